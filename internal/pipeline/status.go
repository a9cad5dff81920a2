package pipeline

// RowCounts is the per-table result of the load stage's verification pass.
type RowCounts struct {
	National int `json:"national"`
	FirmAge  int `json:"byFirmAge"`
	State    int `json:"byState"`
}

type Status struct {
	Running   bool      `json:"running"`
	LastRunAt string    `json:"lastRunAt,omitempty"`
	LastOkAt  string    `json:"lastOkAt,omitempty"`
	LastError string    `json:"lastError,omitempty"`
	Rows      RowCounts `json:"rows"`
}
