/*
	Project: LMS JustCode - console academic record keeper
	Target: a single teacher or school office, one session at a time
*/
package lms

/*
TODO: state file v2
	- store enrollments and grades by position so that a reload keeps them
	- store the course teacher by position in `teachers` instead of by name
	- keep reading v1 files (no "version" key)

TODO: remove / rename teachers, courses & students (positions shift: confirm before deleting)
*/
