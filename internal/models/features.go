package models

// FraudSignal is a sampled customer with synthetic anomaly indicators
type FraudSignal struct {
	CustomerID string `db:"customer_id" json:"customer_id"`

	NationalIDMismatch         bool    `db:"national_id_mismatch" json:"national_id_mismatch"`
	SharedPhoneNumber          bool    `db:"shared_phone_number" json:"shared_phone_number"`
	DistanceAnomaly            bool    `db:"distance_anomaly" json:"distance_anomaly"`
	SuspiciousRepaymentPattern bool    `db:"suspicious_repayment_pattern" json:"suspicious_repayment_pattern"`
	SyntheticCustomerScore     float64 `db:"synthetic_customer_score" json:"synthetic_customer_score"`
}

// AICustomerFeature is a sampled customer with model-ready scores
type AICustomerFeature struct {
	CustomerID       string `db:"customer_id" json:"customer_id"`
	PrimaryBranch    string `db:"primary_branch" json:"primary_branch"`
	AvgWeeklyCash    int    `db:"avg_weekly_cash" json:"avg_weekly_cash"`
	HistoricalCycles int    `db:"historical_cycles" json:"historical_cycles"`

	RiskScore           float64 `db:"risk_score_0_100" json:"risk_score_0_100"`
	DefaultProb         float64 `db:"default_prob" json:"default_prob"`
	ChurnProb           float64 `db:"churn_prob" json:"churn_prob"`
	RecommendedLimitKSh int     `db:"recommended_limit_ksh" json:"recommended_limit_ksh"`
}
