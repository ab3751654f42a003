package request_booking

import "fmt"

// validateRequest валидирует входные данные запроса
// Отклоняет запрос ДО каких-либо изменений состояния
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.BillboardID <= 0 {
		return fmt.Errorf("%w: billboardID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	if req.RequestedPrice < 0 {
		return fmt.Errorf("%w: requestedPrice must not be negative", ErrInvalidInput)
	}

	return nil
}
