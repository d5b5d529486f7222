package runtime

// Must panics on error. Only for use during startup where there is no
// sensible way to continue.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
