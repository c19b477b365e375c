package sqldata

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// Inet is a host address with an optional network prefix, matching the
// PostgreSQL inet type. A bare address is stored with a full-length
// prefix (/32 for IPv4, /128 for IPv6).
type Inet struct {
	netip.Prefix
}

// ParseInet parses an address with an optional prefix length,
// e.g. "192.168.0.1" or "192.168.0.1/24".
func ParseInet(s string) (Inet, error) {
	if !strings.Contains(s, "/") {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return Inet{}, newParseError(TypeInet, s, err)
		}
		return Inet{netip.PrefixFrom(addr, addr.BitLen())}, nil
	}
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return Inet{}, newParseError(TypeInet, s, err)
	}
	return Inet{p}, nil
}

// MustParseInet is like ParseInet but panics on error. It simplifies
// the declaration of fixed addresses.
func MustParseInet(s string) Inet {
	i, err := ParseInet(s)
	if err != nil {
		panic(err)
	}
	return i
}

// InetFromAddr returns the Inet holding the single address addr.
func InetFromAddr(addr netip.Addr) Inet {
	return Inet{netip.PrefixFrom(addr, addr.BitLen())}
}

// IsZero reports if the address is unset.
func (i Inet) IsZero() bool { return !i.IsValid() }

// HostOnly reports whether the value addresses a single host.
func (i Inet) HostOnly() bool {
	return i.IsValid() && i.Bits() == i.Addr().BitLen()
}

// String returns the text form. The prefix length is omitted for
// single-host values, matching the server output.
func (i Inet) String() string {
	if !i.IsValid() {
		return ""
	}
	if i.HostOnly() {
		return i.Addr().String()
	}
	return i.Prefix.String()
}

// Value implements the driver.Valuer interface.
func (i Inet) Value() (driver.Value, error) {
	if !i.IsValid() {
		return nil, nil
	}
	return i.String(), nil
}

// Scan implements the sql.Scanner interface.
func (i *Inet) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*i = Inet{}
		return nil
	case string:
		v, err := ParseInet(src)
		if err != nil {
			return err
		}
		*i = v
		return nil
	case []byte:
		v, err := ParseInet(string(src))
		if err != nil {
			return err
		}
		*i = v
		return nil
	default:
		return newParseError(TypeInet, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (i Inet) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *Inet) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*i = Inet{}
		return nil
	}
	v, err := ParseInet(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// CIDR is a network specification, matching the PostgreSQL cidr type.
// Unlike Inet, bits to the right of the prefix must be zero.
type CIDR struct {
	netip.Prefix
}

// ParseCIDR parses a network in CIDR notation, e.g. "10.1.0.0/16".
// Host bits set below the prefix are rejected.
func ParseCIDR(s string) (CIDR, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return CIDR{}, newParseError(TypeCIDR, s, err)
	}
	if p != p.Masked() {
		return CIDR{}, newParseError(TypeCIDR, s, errors.New("host bits set below the prefix"))
	}
	return CIDR{p}, nil
}

// MustParseCIDR is like ParseCIDR but panics on error.
func MustParseCIDR(s string) CIDR {
	c, err := ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsZero reports if the network is unset.
func (c CIDR) IsZero() bool { return !c.IsValid() }

// String returns the network in CIDR notation.
func (c CIDR) String() string {
	if !c.IsValid() {
		return ""
	}
	return c.Prefix.String()
}

// Value implements the driver.Valuer interface.
func (c CIDR) Value() (driver.Value, error) {
	if !c.IsValid() {
		return nil, nil
	}
	return c.String(), nil
}

// Scan implements the sql.Scanner interface.
func (c *CIDR) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*c = CIDR{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeCIDR, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	// The server may omit the prefix length for full-length networks.
	if !strings.Contains(s, "/") {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return newParseError(TypeCIDR, s, err)
		}
		*c = CIDR{netip.PrefixFrom(addr, addr.BitLen())}
		return nil
	}
	v, err := ParseCIDR(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (c CIDR) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (c *CIDR) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = CIDR{}
		return nil
	}
	v, err := ParseCIDR(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MacAddr is a 6-byte EUI-48 hardware address, matching the PostgreSQL
// macaddr type. The zero value is the all-zero address.
type MacAddr [6]byte

// ParseMacAddr parses a hardware address in any form accepted by
// net.ParseMAC. EUI-64 addresses are rejected.
func ParseMacAddr(s string) (MacAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MacAddr{}, newParseError(TypeMacAddr, s, err)
	}
	if len(hw) != 6 {
		return MacAddr{}, newParseError(TypeMacAddr, s, fmt.Errorf("expected 6 octets, got %d", len(hw)))
	}
	var m MacAddr
	copy(m[:], hw)
	return m, nil
}

// MustParseMacAddr is like ParseMacAddr but panics on error.
func MustParseMacAddr(s string) MacAddr {
	m, err := ParseMacAddr(s)
	if err != nil {
		panic(err)
	}
	return m
}

// HardwareAddr returns the address as a net.HardwareAddr.
func (m MacAddr) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(m[:])
}

// IsZero reports if the address is the all-zero address.
func (m MacAddr) IsZero() bool { return m == MacAddr{} }

// String returns the address in colon-separated form,
// e.g. "08:00:2b:01:02:03".
func (m MacAddr) String() string {
	return m.HardwareAddr().String()
}

// Value implements the driver.Valuer interface. The all-zero address
// is a representable value and is stored as such; use NullScanner or a
// pointer field for NULL columns.
func (m MacAddr) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements the sql.Scanner interface.
func (m *MacAddr) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*m = MacAddr{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeMacAddr, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	v, err := ParseMacAddr(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (m MacAddr) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return nil, nil
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (m *MacAddr) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = MacAddr{}
		return nil
	}
	v, err := ParseMacAddr(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
