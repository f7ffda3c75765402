package elfheader

// Error is a header decode or validation failure. Message is the text
// reported back to clients.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrTooShort   = &Error{Field: "length", Message: "File data too short to be ELF32"}
	ErrTooShort64 = &Error{Field: "length", Message: "File data too short to be ELF64"}

	ErrInvalidMagic   = &Error{Field: "magic", Message: "Invalid magic numbers"}
	ErrInvalidClass   = &Error{Field: "class", Message: "Invalid class value"}
	ErrInvalidData    = &Error{Field: "data", Message: "Invalid data encoding value"}
	ErrInvalidVersion = &Error{Field: "version", Message: "Invalid version value"}
	ErrInvalidType    = &Error{Field: "type", Message: "Invalid file type value"}
	ErrInvalidMachine = &Error{Field: "machine", Message: "Invalid machine architecture value"}
)
