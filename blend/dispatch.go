package blend

// Accelerated entry points. They default to the reference implementations
// and are swapped for the optimized paths by the init in accel.go when the
// platform qualifies. Callers never reach them while hasAccel is false, so
// the defaults only matter as a safety net.
var (
	hasAccel bool
	backend  = "none"

	fillFastARGB8888  = fillRefARGB8888
	fillFastRGB565    = fillRefRGB565
	imageFastARGB8888 = imageRefARGB8888
	imageFastRGB565   = imageRefRGB565
)

// HasAccelerated reports whether the Accelerated variant is usable on this
// platform.
func HasAccelerated() bool {
	return hasAccel
}

// Backend names the selected accelerated backend ("sse2", "asimd") or
// "none" when only the reference path is available.
func Backend() string {
	return backend
}
