package domain

import (
	"net/netip"
	"testing"
)

func TestRData_TypeDerivedFromVariant(t *testing.T) {
	cases := []struct {
		data RData
		want RRType
	}{
		{ARecord{Addr: netip.MustParseAddr("1.2.3.4")}, RRTypeA},
		{CNAMERecord{Target: "example.com"}, RRTypeCNAME},
		{SOARecord{MName: "ns1.example.com"}, RRTypeSOA},
		{TXTRecord{Text: "hello"}, RRTypeTXT},
		{AAAARecord{Addr: netip.MustParseAddr("::1")}, RRTypeAAAA},
		{RawRecord{Code: 41}, RRType(41)},
		{RawRecord{Code: RRTypeMX}, RRTypeMX},
	}
	for _, tc := range cases {
		if got := tc.data.Type(); got != tc.want {
			t.Errorf("Type(%v) = %v, want %v", tc.data, got, tc.want)
		}
	}
}

func TestRData_String(t *testing.T) {
	cases := []struct {
		data RData
		want string
	}{
		{ARecord{Addr: netip.MustParseAddr("1.2.3.4")}, "A(1.2.3.4)"},
		{CNAMERecord{Target: "example.com"}, "CNAME(example.com)"},
		{TXTRecord{Text: "v=spf1"}, "TXT(v=spf1)"},
		{AAAARecord{Addr: netip.MustParseAddr("::1")}, "AAAA(::1)"},
		{RawRecord{Code: 41, Data: []byte{0xAB}}, "Raw(41: ab)"},
	}
	for _, tc := range cases {
		if got := tc.data.String(); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.data, got, tc.want)
		}
	}
}
