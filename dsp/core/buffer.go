package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// It allocates when capacity is short, so real-time callers size buffers up front.
func EnsureLen[T Float](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to 0.
func Zero[T Float](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto[T Float](dst, src []T) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// Frames returns the number of frames that can be processed from src into
// dst: the shorter of the two lengths, further limited by frames when
// frames is non-negative.
func Frames[T Float](dst, src []T, frames int) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	if frames >= 0 && frames < n {
		n = frames
	}
	return n
}
