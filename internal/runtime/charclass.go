package runtime

// ByteSet is a 256-entry membership table for O(1) byte classification.
type ByteSet [256]bool

// Pre-built byte sets for the POSIX classes the lexer uses (ASCII only).
var (
	DigitBytes ByteSet // [[:digit:]]
	SpaceBytes ByteSet // [[:space:]]
	AlphaBytes ByteSet // [[:alpha:]]
	AlnumBytes ByteSet // [[:alnum:]]
)

func init() {
	for c := '0'; c <= '9'; c++ {
		DigitBytes[c] = true
	}

	for _, c := range " \t\n\r\f\v" {
		SpaceBytes[c] = true
	}

	for c := 'a'; c <= 'z'; c++ {
		AlphaBytes[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		AlphaBytes[c] = true
	}

	AlnumBytes = AlphaBytes.Union(DigitBytes)
}

// NewByteSet returns the set of bytes in chars.
func NewByteSet(chars string) ByteSet {
	var s ByteSet
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = true
	}
	return s
}

// Union returns the bytes in s or t.
func (s ByteSet) Union(t ByteSet) ByteSet {
	for i, ok := range t {
		if ok {
			s[i] = true
		}
	}
	return s
}

// span returns the length of the longest prefix of str made of bytes in s,
// stopping at max when max > 0.
func (s *ByteSet) span(str string, max int) int {
	n := len(str)
	if max > 0 && max < n {
		n = max
	}
	for i := 0; i < n; i++ {
		if !s[str[i]] {
			return i
		}
	}
	return n
}
