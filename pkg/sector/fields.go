package sector

// FieldReader reads fixed-width fields relative to a base offset within a sector. The first bounds
// failure is kept and later reads return zero values, so a decoder checks Err once after extracting
// all of its fields.
type FieldReader struct {
	s    *Sector
	base int
	err  error
}

// Fields returns a FieldReader whose offsets are relative to base.
func (s *Sector) Fields(base int) *FieldReader {
	return &FieldReader{s: s, base: base}
}

// Err returns the first bounds failure, if any.
func (r *FieldReader) Err() error {
	return r.err
}

// Bytes returns a copy of length bytes at offset.
func (r *FieldReader) Bytes(offset, length int) []byte {
	if r.err != nil {
		return make([]byte, max(length, 0))
	}
	b, err := r.s.Field(r.base+offset, length)
	if err != nil {
		r.err = err
		return make([]byte, max(length, 0))
	}
	return append([]byte(nil), b...)
}

func (r *FieldReader) String(offset, length int) string {
	if r.err != nil {
		return ""
	}
	v, err := r.s.String(r.base+offset, length)
	r.err = err
	return v
}

func (r *FieldReader) Byte(offset int) byte {
	if r.err != nil {
		return 0
	}
	v, err := r.s.Byte(r.base + offset)
	r.err = err
	return v
}

func (r *FieldReader) Uint16LE(offset int) uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.s.Uint16LE(r.base + offset)
	r.err = err
	return v
}

func (r *FieldReader) Uint32LE(offset int) uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.s.Uint32LE(r.base + offset)
	r.err = err
	return v
}

func (r *FieldReader) Uint32BE(offset int) uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.s.Uint32BE(r.base + offset)
	r.err = err
	return v
}
