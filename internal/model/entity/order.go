package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order is intentionally denormalized on read: the four reference
// associations are preloaded so API consumers get names alongside ids.
type Order struct {
	ID                 string        `json:"id" gorm:"primaryKey;size:32"`
	OrderCode          string        `json:"order_code" gorm:"size:16;not null;uniqueIndex"`
	CustomerName       string        `json:"customer_name" gorm:"size:128;not null"`
	OrderDate          time.Time     `json:"order_date" gorm:"type:date;not null"`
	DeliveryDate       time.Time     `json:"delivery_date" gorm:"type:date;not null"`
	EDD                *time.Time    `json:"edd,omitempty" gorm:"type:date"`
	ProductCategoryID  string        `json:"product_category_id" gorm:"size:32;not null"`
	ProductNameID      string        `json:"product_name_id" gorm:"size:32;not null"`
	ColorID            string        `json:"color_id" gorm:"size:32;not null"`
	SalesCoordinatorID string        `json:"sales_coordinator_id" gorm:"size:32;not null"`
	Sizes              SizeBreakdown `json:"size_breakdown" gorm:"type:jsonb;not null"`
	TotalQty           int           `json:"total_qty" gorm:"not null"`
	CostPerPc          float64       `json:"cost_per_pc" gorm:"not null"`
	TotalAmount        float64       `json:"total_amount" gorm:"not null"`
	OrderType          string        `json:"order_type" gorm:"size:16;not null"`
	Priority           string        `json:"priority" gorm:"size:16;not null"`
	BrandingMethod     string        `json:"branding_method" gorm:"size:16;not null"`
	Status             string        `json:"order_status" gorm:"size:24;not null;default:pending-approval"`
	Placement1         string        `json:"placement1" gorm:"size:64"`
	Placement1Size     string        `json:"placement1_size" gorm:"size:64"`
	Placement2         string        `json:"placement2" gorm:"size:64"`
	Placement2Size     string        `json:"placement2_size" gorm:"size:64"`
	Placement3         string        `json:"placement3" gorm:"size:64"`
	Placement3Size     string        `json:"placement3_size" gorm:"size:64"`
	Placement4         string        `json:"placement4" gorm:"size:64"`
	Placement4Size     string        `json:"placement4_size" gorm:"size:64"`
	MockupFiles        StringList    `json:"mockup_files" gorm:"type:jsonb"`
	Attachments        StringList    `json:"attachments" gorm:"type:jsonb"`
	Description        string        `json:"description" gorm:"type:text;not null"`
	Remarks            string        `json:"remarks" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	// Associations
	ProductCategory  *ProductCategory  `json:"product_category,omitempty" gorm:"foreignKey:ProductCategoryID"`
	ProductName      *ProductName      `json:"product_name,omitempty" gorm:"foreignKey:ProductNameID"`
	Color            *Color            `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	SalesCoordinator *SalesCoordinator `json:"sales_coordinator,omitempty" gorm:"foreignKey:SalesCoordinatorID"`
}

func (Order) TableName() string {
	return "orders"
}

// Order statuses
const (
	StatusPendingApproval = "pending-approval"
	StatusStickerPrinting = "sticker-printing"
	StatusSampleApproval  = "sample-approval"
	StatusUnderFusing     = "under-fusing"
	StatusUnderPackaging  = "under-packaging"
	StatusReadyToShip     = "ready-to-ship"
	StatusDispatched      = "dispatched"
	StatusCancelled       = "cancelled"
)

// StatusChain is the forward production sequence. Cancelled sits outside the
// chain and is reachable from every status except dispatched and itself.
var StatusChain = []string{
	StatusPendingApproval,
	StatusStickerPrinting,
	StatusSampleApproval,
	StatusUnderFusing,
	StatusUnderPackaging,
	StatusReadyToShip,
	StatusDispatched,
}

// StatusLabels maps each status to its display label.
var StatusLabels = map[string]string{
	StatusPendingApproval: "Pending Approval",
	StatusStickerPrinting: "Sticker Printing",
	StatusSampleApproval:  "Sample Approval",
	StatusUnderFusing:     "Under Fusing",
	StatusUnderPackaging:  "Under Packaging",
	StatusReadyToShip:     "Ready to Ship",
	StatusDispatched:      "Dispatched",
	StatusCancelled:       "Cancelled",
}

// StatusActions maps each status to the activity-feed phrase.
var StatusActions = map[string]string{
	StatusPendingApproval: "is pending approval",
	StatusStickerPrinting: "moved to sticker printing",
	StatusSampleApproval:  "moved to sample approval",
	StatusUnderFusing:     "moved to fusing",
	StatusUnderPackaging:  "moved to packaging",
	StatusReadyToShip:     "is ready to ship",
	StatusDispatched:      "was dispatched",
	StatusCancelled:       "was cancelled",
}

// StatusAction returns the activity phrase for a status, with a fallback for
// unknown values.
func StatusAction(status string) string {
	if action, ok := StatusActions[status]; ok {
		return action
	}
	return "was updated"
}

// IsValidStatus reports whether s is a member of the status enumeration.
func IsValidStatus(s string) bool {
	_, ok := StatusLabels[s]
	return ok
}

// IsTerminalStatus reports whether no further transition is allowed from s.
func IsTerminalStatus(s string) bool {
	return s == StatusDispatched || s == StatusCancelled
}

// Order types
const (
	OrderTypeNew    = "new"
	OrderTypeRepeat = "repeat"
	OrderTypeSample = "sample"
	OrderTypeRush   = "rush"
)

// OrderTypeColors are the chart colors used by the type-distribution widget.
var OrderTypeColors = map[string]string{
	OrderTypeNew:    "#3B82F6",
	OrderTypeRepeat: "#10B981",
	OrderTypeSample: "#8B5CF6",
	OrderTypeRush:   "#EF4444",
}

// OrderTypeLabels are the display names shown next to those colors.
var OrderTypeLabels = map[string]string{
	OrderTypeNew:    "New",
	OrderTypeRepeat: "Repeat",
	OrderTypeSample: "Sample",
	OrderTypeRush:   "Rush",
}

func IsValidOrderType(s string) bool {
	_, ok := OrderTypeColors[s]
	return ok
}

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Priorities in descending urgency, the fixed bucket order of the
// priority-distribution widget.
var Priorities = []string{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

func IsValidPriority(s string) bool {
	for _, p := range Priorities {
		if p == s {
			return true
		}
	}
	return false
}

// Branding methods
const (
	BrandingEmbroidery   = "embroidery"
	BrandingScreenPrint  = "screen-print"
	BrandingHeatTransfer = "heat-transfer"
	BrandingSublimation  = "sublimation"
	BrandingVinyl        = "vinyl"
	BrandingDTF          = "dtf"
	BrandingNone         = "none"
)

var brandingMethods = map[string]bool{
	BrandingEmbroidery:   true,
	BrandingScreenPrint:  true,
	BrandingHeatTransfer: true,
	BrandingSublimation:  true,
	BrandingVinyl:        true,
	BrandingDTF:          true,
	BrandingNone:         true,
}

func IsValidBrandingMethod(s string) bool {
	return brandingMethods[s]
}

// OrderCodePrefix is the shop prefix of every order code.
const OrderCodePrefix = "SP"

// FormatOrderCode builds the canonical order code SP/<year>/<4-digit seq>.
func FormatOrderCode(year, seq int) string {
	return fmt.Sprintf("%s/%d/%04d", OrderCodePrefix, year, seq)
}

// ParseOrderCodeSeq extracts the sequence number from an order code of the
// given year. Returns 0 for codes of other years or malformed codes.
func ParseOrderCodeSeq(code string, year int) int {
	prefix := fmt.Sprintf("%s/%d/", OrderCodePrefix, year)
	if !strings.HasPrefix(code, prefix) {
		return 0
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
	if err != nil {
		return 0
	}
	return seq
}

// NextOrderCode scans the given orders for the highest sequence of the year
// and returns the next code in line.
func NextOrderCode(orders []Order, year int) string {
	maxSeq := 0
	for i := range orders {
		if seq := ParseOrderCodeSeq(orders[i].OrderCode, year); seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatOrderCode(year, maxSeq+1)
}
