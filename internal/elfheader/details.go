package elfheader

// Details is everything learned about one received file. The zero value is
// an empty record; Reset returns it to that state between requests.
type Details struct {
	Size   int
	Class  byte
	Header Header
	Valid  bool

	ClassName   string
	DataName    string
	TypeName    string
	MachineName string
	EntryPoint  string

	Err error
}

// Decode records the payload size and decodes its header for a host with
// the given byte order.
func (d *Details) Decode(payload []byte, hostLittle bool) error {
	d.Size = len(payload)
	h, err := DecodeFor(payload, hostLittle)
	if err != nil {
		d.Err = err
		return err
	}
	d.Header = h
	d.Class = h.Identification().Class
	return nil
}

// Verify validates the decoded header and fills in the descriptive fields.
func (d *Details) Verify(hostLittle bool) error {
	if d.Header == nil {
		d.Err = ErrTooShort
		return d.Err
	}
	r, err := Verify(d.Header, hostLittle)
	d.ClassName = r.Class.Name
	d.DataName = r.Data.Name
	d.TypeName = r.Type.Name
	d.MachineName = r.Machine.Name
	if err != nil {
		d.Err = err
		return err
	}
	d.EntryPoint = r.EntryPoint
	d.Valid = true
	return nil
}

func (d *Details) Reset() {
	*d = Details{}
}
