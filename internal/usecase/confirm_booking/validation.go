package confirm_booking

import "fmt"

func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenant id must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.FinalPrice < 0 {
		return fmt.Errorf("%w: final price must not be negative", ErrInvalidInput)
	}
	return nil
}
