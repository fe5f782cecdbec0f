package models

// ImportRowError pins a failure to the sheet row that caused it.
type ImportRowError struct {
	RowNumber int    `json:"row_number"`
	Message   string `json:"message"`
}

// ImportResult summarizes one reconciliation run. A row failure never rolls
// back any other row; the counts always add up to the total parsed rows.
type ImportResult struct {
	TotalRows    int              `json:"total_rows"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	CreatedCount int              `json:"created_count"`
	UpdatedCount int              `json:"updated_count"`
	Errors       []ImportRowError `json:"errors"`
}
