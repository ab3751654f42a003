package notify

import "time"

// ExpirationWarning событие-предупреждение об истечении договора
// Потребитель exchange'а отвечает за доставку и дедупликацию повторных
// отправок (sweep может запуститься дважды за день)
type ExpirationWarning struct {
	TenantID            int64     `json:"tenantId"`
	ContractID          int64     `json:"contractId"`
	ClientID            int64     `json:"clientId"`
	DaysUntilExpiration int       `json:"daysUntilExpiration"`
	Urgency             string    `json:"urgency"`
	EndDate             time.Time `json:"endDate"`
}
