package dimension

// Store is the key/value capability a host offers for per-node data such as
// a path's cut depth or a frame's width.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MapStore is an in-memory Store.
type MapStore map[string]string

func (m MapStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapStore) Set(key, value string) {
	m[key] = value
}

// LoadUnit reads key from s and validates it as a real unit. An absent or
// empty value returns ok=false and no error. LoadUnit never writes to s; on
// error the caller decides whether to clear the key.
func LoadUnit(s Store, key string) (u Unit, ok bool, err error) {
	raw, found := s.Get(key)
	if !found || raw == "" {
		return None, false, nil
	}
	u, err = AssertRealUnit(raw)
	if err != nil {
		return None, false, err
	}
	return u, true, nil
}

// LoadRealString reads key from s and validates it as a RealString. Like
// LoadUnit it never writes to s.
func LoadRealString(s Store, key string, ensurePositive bool) (v RealString, ok bool, err error) {
	raw, found := s.Get(key)
	if !found || raw == "" {
		return "", false, nil
	}
	v, err = AssertRealString(raw, ensurePositive)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
