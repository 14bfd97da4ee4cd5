package types

// RoleCategory is the resolved job family of an opportunity
type RoleCategory string

// Role categories, in no particular order. Resolution order lives in the roles package.
const (
	RoleProductManager    RoleCategory = "Product Manager"
	RoleDataScientist     RoleCategory = "Data Scientist"
	RoleDataEngineer      RoleCategory = "Data Engineer"
	RoleMobileEngineer    RoleCategory = "Mobile Software Engineer"
	RoleFrontEndEngineer  RoleCategory = "Front End Engineer"
	RoleBackEndEngineer   RoleCategory = "Back End Engineer"
	RoleFullStackEngineer RoleCategory = "Full Stack Engineer"
	RoleProductDesigner   RoleCategory = "Product Designer"
	RoleSiteReliability   RoleCategory = "Site Reliability Engineer"
	RoleSecurityEngineer  RoleCategory = "Security Engineer"
	RoleSoftwareEngineer  RoleCategory = "Software Engineer"
)

// LocationCategory is the resolved metro area of an opportunity
type LocationCategory string

// Location categories
const (
	LocationBayArea      LocationCategory = "San Francisco Bay Area"
	LocationNewYork      LocationCategory = "New York NY"
	LocationSeattle      LocationCategory = "Seattle WA"
	LocationAustin       LocationCategory = "Austin TX"
	LocationDenver       LocationCategory = "Denver CO"
	LocationAtlanta      LocationCategory = "Atlanta GA"
	LocationPhoenix      LocationCategory = "Phoenix AZ"
	LocationSaltLakeCity LocationCategory = "Salt Lake City UT"
	LocationChicago      LocationCategory = "Chicago IL"
	LocationBoston       LocationCategory = "Boston MA"
	LocationRemote       LocationCategory = "Remote"
	LocationUnitedStates LocationCategory = "United States"
)

// SeniorityLevel is the resolved career level of an opportunity
type SeniorityLevel string

// Seniority levels
const (
	SeniorityIntern    SeniorityLevel = "intern"
	SeniorityJunior    SeniorityLevel = "junior"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityStaff     SeniorityLevel = "staff"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityExecutive SeniorityLevel = "executive"
)

// Defaults used when no pattern matches
const (
	DefaultRole      = RoleSoftwareEngineer
	DefaultLocation  = LocationUnitedStates
	DefaultSeniority = SeniorityMid
)

// RoleMetadata is the resolved role, location and seniority for one run.
// CombinedText keeps the original casing; matching is done on its lower-cased form.
type RoleMetadata struct {
	Role         RoleCategory     `json:"role"`
	Location     LocationCategory `json:"location"`
	Seniority    SeniorityLevel   `json:"seniority"`
	CombinedText string           `json:"combinedText"`
}
