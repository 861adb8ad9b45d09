package dto

// AuditLogsQuery filtros de consulta de la bitácora. Se aplica el primero no vacío:
// Action, Actor, Last; sin filtros se devuelven todas las entradas.
type AuditLogsQuery struct {
	Action string
	Actor  string
	Last   int
}

// AuditLogsResponse entradas de la bitácora tal como están en el archivo.
type AuditLogsResponse struct {
	Entries []string `json:"entries"`
	Count   int      `json:"count"`
}

// AuditStatsResponse estadísticas de la bitácora.
type AuditStatsResponse struct {
	Total      int    `json:"total"`
	Successful int    `json:"successful"`
	Errors     int    `json:"errors"`
	Actor      string `json:"actor"`
	Summary    string `json:"summary"`
}

// ExportRequest destino de la exportación.
type ExportRequest struct {
	Path string `json:"path"`
}
