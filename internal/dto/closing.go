package dto

// ClosingPeriodURI binds the year and month path parameters.
type ClosingPeriodURI struct {
	Year  int `uri:"year" binding:"required,min=1900,max=9999"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}
