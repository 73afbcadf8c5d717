package util

import "testing"

func TestValidatePaymentAmount(t *testing.T) {
	if err := ValidatePaymentAmount(85000); err != nil {
		t.Errorf("850.00 should be valid: %v", err)
	}
	if err := ValidatePaymentAmount(0); err == nil {
		t.Error("zero payment should be rejected")
	}
	if err := ValidatePaymentAmount(-100); err == nil {
		t.Error("negative payment should be rejected")
	}
	if err := ValidatePaymentAmount(10_000_000_00); err == nil {
		t.Error("absurd payment should be rejected")
	}
}

func TestValidateRentAmount(t *testing.T) {
	if err := ValidateRentAmount(0); err != nil {
		t.Errorf("zero rent is legal (free month): %v", err)
	}
	if err := ValidateRentAmount(-1); err == nil {
		t.Error("negative rent should be rejected")
	}
	if err := ValidateRentAmount(50000); err != nil {
		t.Errorf("500.00 should be valid: %v", err)
	}
}

func TestValidateDate(t *testing.T) {
	d, err := ValidateDate("2023-04-01")
	if err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if d.Year() != 2023 || d.Month() != 4 || d.Day() != 1 {
		t.Errorf("parsed wrong day: %v", d)
	}

	for _, s := range []string{"", "2023-13-01", "01/04/2023", "2023-04-31"} {
		if _, err := ValidateDate(s); err == nil {
			t.Errorf("ValidateDate(%q) should fail", s)
		}
	}
}

func TestValidateRoomCapacity(t *testing.T) {
	for _, c := range []int{1, 2, 3, 4} {
		if err := ValidateRoomCapacity(c); err != nil {
			t.Errorf("capacity %d should be valid: %v", c, err)
		}
	}
	for _, c := range []int{0, -1, 5, 100} {
		if err := ValidateRoomCapacity(c); err == nil {
			t.Errorf("capacity %d should be rejected", c)
		}
	}
}
