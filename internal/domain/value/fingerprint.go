package value

// Fingerprint is the content-addressed identity of a listing: a 128-bit
// digest over the normalized listing fields, hex-encoded. Two scrapes of the
// same real ad produce the same fingerprint no matter how the source reformats
// the markup or rewrites the URL.
type Fingerprint string

func (f Fingerprint) String() string {
	return string(f)
}

// Empty reports whether the fingerprint is unset. An empty fingerprint must
// never reach the ledger.
func (f Fingerprint) Empty() bool {
	return f == ""
}
