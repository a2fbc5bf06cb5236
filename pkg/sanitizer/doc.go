// Package sanitizer strips or restricts HTML in user-submitted text using
// bluemonday policies. Policies are built once and reused; they are safe for
// concurrent use.
package sanitizer
