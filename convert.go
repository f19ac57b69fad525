// Copyright (c) 2026 The patriciaroute authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"encoding/binary"
	"net/netip"

	"github.com/patriciaroute/lpm/bitkey"
)

func key4FromPrefix(pfx netip.Prefix) (bitkey.Key4, error) {
	if !pfx.IsValid() || !pfx.Addr().Is4() {
		return bitkey.Key4{}, ErrFamilyMismatch
	}
	b := pfx.Addr().As4()
	bits := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return bitkey.NewKey4(bits, uint8(pfx.Bits()))
}

func prefixFromKey4(k bitkey.Key4) netip.Prefix {
	b := k.Bits()
	addr := netip.AddrFrom4([4]byte{byte(b >> 24), byte(b >> 16), byte(b >> 8), byte(b)})
	return netip.PrefixFrom(addr, int(k.Len()))
}

func key6FromPrefix(pfx netip.Prefix) (bitkey.Key6, error) {
	if !pfx.IsValid() || pfx.Addr().Is4() {
		return bitkey.Key6{}, ErrFamilyMismatch
	}
	b := pfx.Addr().As16()
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	return bitkey.NewKey6(hi, lo, uint8(pfx.Bits()))
}

func prefixFromKey6(k bitkey.Key6) netip.Prefix {
	hi, lo := k.Limbs()
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], hi)
	binary.BigEndian.PutUint64(b[8:], lo)
	addr := netip.AddrFrom16(b)
	return netip.PrefixFrom(addr, int(k.Len()))
}
