package domain

type CertificationStatus string

const (
	CertNone      CertificationStatus = "none"
	CertInProcess CertificationStatus = "in-process"
	CertCertified CertificationStatus = "certified"
)

// ValidCertificationStatuses is the canonical set of accepted status strings.
var ValidCertificationStatuses = map[string]bool{
	"none": true, "in-process": true, "certified": true,
}

type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

type MaterialType string

const (
	MaterialLink     MaterialType = "link"
	MaterialDocument MaterialType = "document"
	MaterialVideo    MaterialType = "video"
)

// ValidMaterialTypes is the canonical set of accepted material type strings.
var ValidMaterialTypes = map[string]bool{
	"link": true, "document": true, "video": true,
}
