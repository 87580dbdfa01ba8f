package iptree

import (
	"encoding/binary"
	"net/netip"
	"strings"

	"github.com/henderiw/intervaltree/pkg/tree"
	"github.com/pkg/errors"
	"go4.org/netipx"
)

// IPTree answers whether an IPv4 address falls in any of a set of address
// ranges. Ranges are accepted as a prefix ("10.0.0.0/8"), a single address,
// or an explicit range ("10.0.0.1-10.0.0.9").
type IPTree interface {
	Insert(s string) error
	Contains(addr string) (bool, error)
	Merge() []netipx.IPRange
	Covered() uint64
	Len() int
}

type ipTree struct {
	tree *tree.Tree[uint32]
}

func New() IPTree {
	return &ipTree{tree: tree.New[uint32]()}
}

// Build parses all ranges and bulk loads them. It fails on the first range
// that does not parse.
func Build(ranges []string) (IPTree, error) {
	intervals := make([]tree.Interval[uint32], 0, len(ranges))
	for _, s := range ranges {
		iv, err := ParseRange(s)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return &ipTree{tree: tree.Build(intervals)}, nil
}

func (r *ipTree) Insert(s string) error {
	iv, err := ParseRange(s)
	if err != nil {
		return err
	}
	r.tree.InsertInterval(iv)
	return nil
}

func (r *ipTree) Contains(addr string) (bool, error) {
	a, err := netip.ParseAddr(strings.TrimSpace(addr))
	if err != nil {
		return false, errors.Wrapf(err, "invalid address %q", addr)
	}
	if !a.Is4() {
		return false, errors.Errorf("address %s is not IPv4", a)
	}
	return r.tree.ContainsIncludingBorders(addrToUint32(a)), nil
}

func (r *ipTree) Merge() []netipx.IPRange {
	merged := r.tree.Merge()
	out := make([]netipx.IPRange, 0, len(merged))
	for _, iv := range merged {
		out = append(out, netipx.IPRangeFrom(uint32ToAddr(iv.Start), uint32ToAddr(iv.End)))
	}
	return out
}

func (r *ipTree) Covered() uint64 {
	return r.tree.Covered()
}

func (r *ipTree) Len() int {
	return r.tree.Len()
}

// ParseRange converts a prefix, an address or an address range to an
// interval over the numeric IPv4 space.
func ParseRange(s string) (tree.Interval[uint32], error) {
	s = strings.TrimSpace(s)
	var ipRange netipx.IPRange
	switch {
	case strings.ContainsRune(s, '/'):
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return tree.Interval[uint32]{}, errors.Wrapf(err, "could not convert CIDR %q to IP range", s)
		}
		ipRange = netipx.RangeOfPrefix(p)
	case strings.ContainsRune(s, '-'):
		from, to, _ := strings.Cut(s, "-")
		fromAddr, err := netip.ParseAddr(strings.TrimSpace(from))
		if err != nil {
			return tree.Interval[uint32]{}, errors.Wrapf(err, "invalid from address in range %q", s)
		}
		toAddr, err := netip.ParseAddr(strings.TrimSpace(to))
		if err != nil {
			return tree.Interval[uint32]{}, errors.Wrapf(err, "invalid to address in range %q", s)
		}
		if toAddr.Less(fromAddr) {
			fromAddr, toAddr = toAddr, fromAddr
		}
		ipRange = netipx.IPRangeFrom(fromAddr, toAddr)
	default:
		a, err := netip.ParseAddr(s)
		if err != nil {
			return tree.Interval[uint32]{}, errors.Wrapf(err, "invalid address %q", s)
		}
		ipRange = netipx.IPRangeFrom(a, a)
	}
	if !ipRange.IsValid() {
		return tree.Interval[uint32]{}, errors.Errorf("invalid ip range %q", s)
	}
	if !ipRange.From().Is4() {
		return tree.Interval[uint32]{}, errors.Errorf("ip range %q is not IPv4", s)
	}
	return tree.NewInterval(addrToUint32(ipRange.From()), addrToUint32(ipRange.To())), nil
}

func addrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uint32ToAddr(n uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return netip.AddrFrom4(b)
}
