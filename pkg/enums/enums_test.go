package enums

import "testing"

func TestParseCustomerType(t *testing.T) {
	if got, err := ParseCustomerType("B2B"); err != nil || got != CustomerTypeB2B {
		t.Fatalf("ParseCustomerType(B2B) = %v, %v", got, err)
	}
	if _, err := ParseCustomerType("b2b"); err == nil {
		t.Fatal("expected case-sensitive parse to fail")
	}
}

func TestDiscountTypeIsValid(t *testing.T) {
	cases := map[DiscountType]bool{
		DiscountTypePercentage:   true,
		DiscountTypeFixed:        true,
		DiscountTypeBuyOneGetOne: true,
		DiscountType("bogus"):    false,
	}
	for value, want := range cases {
		if got := value.IsValid(); got != want {
			t.Fatalf("IsValid(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestParseB2BTier(t *testing.T) {
	for _, tier := range []string{"Bronze", "Silver", "Gold"} {
		if _, err := ParseB2BTier(tier); err != nil {
			t.Fatalf("ParseB2BTier(%q): %v", tier, err)
		}
	}
	if _, err := ParseB2BTier("Platinum"); err == nil {
		t.Fatal("expected unknown tier to fail")
	}
}

func TestParseUserRole(t *testing.T) {
	if got, err := ParseUserRole("admin"); err != nil || got != UserRoleAdmin {
		t.Fatalf("ParseUserRole(admin) = %v, %v", got, err)
	}
}
