package domain

// Record is one catalog entry.
// The mapstructure tags match the column headers of the source dataset.
type Record struct {
	Name                    string `json:"name" mapstructure:"College Name"`
	Location                string `json:"location" mapstructure:"Location"`
	OwnershipType           string `json:"ownership" mapstructure:"Ownership"`
	Accreditation           string `json:"accreditation" mapstructure:"Accreditation"`
	InstitutionType         string `json:"institution_type" mapstructure:"Type of Institution"`
	AdmissionCriteria       string `json:"admission_criteria" mapstructure:"Admission Criteria"`
	ApplicationProcess      string `json:"application_process" mapstructure:"Application Process"`
	ApplicationFee          Money  `json:"application_fee" mapstructure:"Application Fees"`
	ScholarshipInfo         string `json:"scholarships" mapstructure:"Scholarship Opportunities"`
	EntranceExams           string `json:"entrance_exams" mapstructure:"Entrance Exams"`
	ProgramsOffered         string `json:"programs_offered" mapstructure:"Programs Offered"`
	ProgramDuration         string `json:"program_duration" mapstructure:"Duration of Programs"`
	CurriculumHighlights    string `json:"curriculum_highlights" mapstructure:"Curriculum Highlights"`
	TuitionFee              Money  `json:"tuition_fee" mapstructure:"Tuition Fees"`
	OtherFees               Money  `json:"other_fees" mapstructure:"Other Fees"`
	PaymentPlans            string `json:"payment_plans" mapstructure:"Payment Plans"`
	CampusFacilities        string `json:"campus_facilities" mapstructure:"Campus Facilities"`
	PlacementStatistics     string `json:"placement_statistics" mapstructure:"Placement Statistics"`
	InternshipOpportunities string `json:"internships" mapstructure:"Internship Opportunities"`
	ContactEmail            string `json:"email" mapstructure:"Email Address"`
	WebsiteURL              string `json:"website" mapstructure:"Website URL"`
}

// Column headers as they appear in the source dataset.
const (
	ColumnName           = "College Name"
	ColumnLocation       = "Location"
	ColumnApplicationFee = "Application Fees"
	ColumnTuitionFee     = "Tuition Fees"
	ColumnOtherFees      = "Other Fees"
)

// Columns lists every dataset header in schema order.
var Columns = []string{
	ColumnName,
	ColumnLocation,
	"Ownership",
	"Accreditation",
	"Type of Institution",
	"Admission Criteria",
	"Application Process",
	ColumnApplicationFee,
	"Scholarship Opportunities",
	"Entrance Exams",
	"Programs Offered",
	"Duration of Programs",
	"Curriculum Highlights",
	ColumnTuitionFee,
	ColumnOtherFees,
	"Payment Plans",
	"Campus Facilities",
	"Placement Statistics",
	"Internship Opportunities",
	"Email Address",
	"Website URL",
}
