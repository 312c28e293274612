package constants

// Section identifiers referenced by the dashboard.
const (
	SectionGate         = "gate"
	SectionJobs         = "jobs"
	SectionWork         = "work"
	SectionPeace        = "peace"
	SectionDSA          = "dsa"
	SectionContent      = "content"
	SectionDiet         = "diet"
	SectionMoney        = "money"
	SectionSatisfaction = "satisfaction"
	SectionGratitude    = "gratitude"
	SectionOffChest     = "offchest"
	SectionAI           = "ai"
)

// Field identifiers referenced by the dashboard.
const (
	FieldGateTime     = "time"
	FieldJobsCount    = "count"
	FieldDietStuck    = "stuck"
	FieldMoneySpent   = "spent"
	FieldMoneyIncome  = "income"
	FieldIncomeAmount = "income_amount"
)
