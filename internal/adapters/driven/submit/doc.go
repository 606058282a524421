// Package submit posts generated responses to a form's response endpoint.
package submit
