package responses

type CleanupPlaceholders struct {
	Deleted []string `json:"deleted"`
}

type DirectoryExport struct {
	ObjectName string `json:"object_name"`
	Count      int    `json:"count"`
}
