package enum

// ── Product names (fixed upstream catalog, drive special-cased behavior) ──

const (
	ProductHuskedCoconut   = "Husked Coconut"
	ProductUnhuskedCoconut = "Unhusked Coconut"
	ProductCopra           = "Copra"
	ProductReject          = "Reject"
)

// ── Suggested actions for high-stock alerts ──

const (
	ActionDeliver = "deliver"
	ActionHusk    = "process (husk)"
)

// ── Notification kinds ──

const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyWarning = "warning"
)

// ── Profit report grouping ──

const (
	GroupByRaw     = "raw"
	GroupByDaily   = "daily"
	GroupByWeekly  = "weekly"
	GroupByMonthly = "monthly"
)

// ── Seller activity status (derived client-side, no upstream constraint) ──

const (
	SellerActive   = "active"
	SellerInactive = "inactive"
)

// ── Seller overview sort keys ──

const (
	SortByName         = "name"
	SortByRevenue      = "revenue"
	SortByTransactions = "transactions"
	SortByQuantity     = "quantity"
)
