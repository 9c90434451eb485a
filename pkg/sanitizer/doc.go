// Package sanitizer normalizes user-supplied strings before they are stored
// or compared, and masks personal data before it is logged.
package sanitizer
