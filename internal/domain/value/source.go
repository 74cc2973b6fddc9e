package value

// Source identifies the marketplace a listing was scraped from.
type Source string

const (
	SourceOLX      Source = "olx"
	SourceAllegro  Source = "allegro"
	SourceFacebook Source = "facebook"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) Valid() bool {
	switch s {
	case SourceOLX, SourceAllegro, SourceFacebook:
		return true
	}
	return false
}
