package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Salon/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Salon"
	AppID             = "com.github.tartampluch.go-salon"
	KeyringService    = "com.github.tartampluch.go-salon"
	KeyringTokenUser  = "backend-api-token"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "GOSALON_"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// FilePermShared represents -rw-r--r--, used for exported reports.
	FilePermShared fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion        = "version"
	FlagDebug          = "debug"
	FlagConfig         = "config"
	FlagExportHTML     = "export-html"
	FlagOut            = "out"
	FlagDescVersion    = "Show application version and exit"
	FlagDescDebug      = "Enable debug logging to stdout"
	FlagDescConfig     = "Path to an optional YAML settings file"
	FlagDescExportHTML = "Export the first visible table of a saved HTML page and exit"
	FlagDescOut        = "Output directory for headless exports"
	MsgVersionOutput   = "%s version %s (%s/%s)\n"
	MsgHeadlessExport  = "Exported %s (%d rows)\n"
)

// -----------------------------------------------------------------------------
// Routes & Page Names
// -----------------------------------------------------------------------------

const (
	RouteDashboard       = "/"
	RouteBookings        = "/bookings"
	RouteStylists        = "/stylists"
	RouteServices        = "/services"
	RouteInventory       = "/inventory"
	RouteExpenses        = "/expenses"
	RoutePendingPayments = "/pending-payments"

	// DefaultPageName names exports whose route has no entry in PageNames.
	DefaultPageName = "Report"
)

// PageNames maps a route path to the display name used for export file names.
var PageNames = map[string]string{
	RouteDashboard:       "Dashboard",
	RouteBookings:        "Bookings",
	RouteStylists:        "Stylists",
	RouteServices:        "Services",
	RouteInventory:       "Inventory",
	RouteExpenses:        "Expenses",
	RoutePendingPayments: "Pending Payments",
}

// -----------------------------------------------------------------------------
// Backend Resources & Record Fields
// -----------------------------------------------------------------------------

const (
	ResourceBookings  = "bookings"
	ResourceStylists  = "stylists"
	ResourceServices  = "services"
	ResourceInventory = "inventory"
	ResourceExpenses  = "expenses"

	// JSON envelope key some backend endpoints wrap their arrays in.
	EnvelopeData = "data"

	FieldID        = "_id"
	FieldIDAlt     = "id"
	FieldDate      = "date"
	FieldCreatedAt = "createdAt"
	FieldDateAdded = "dateAdded"
	FieldTime      = "time"
	FieldCustomer  = "customerName"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldService   = "service"
	FieldStylist   = "stylist"
	FieldName      = "name"
	FieldPrice     = "price"
	FieldAmount    = "amount"
	FieldPaid      = "amountPaid"
	FieldStatus    = "status"
	FieldCategory  = "category"
	FieldQuantity  = "quantity"
	FieldDuration  = "duration"
	FieldSpecialty = "specialty"
	FieldNote      = "description"
	FieldBalance   = "balance" // derived by the pending payments page
)

// DateCandidateFields is the default probe order for a record's temporal value.
var DateCandidateFields = []string{FieldDate, FieldCreatedAt, FieldDateAdded}

// -----------------------------------------------------------------------------
// Column Labels (export headers)
// -----------------------------------------------------------------------------

const (
	ColDate        = "Date"
	ColTime        = "Time"
	ColCustomer    = "Customer"
	ColService     = "Service"
	ColStylist     = "Stylist"
	ColPrice       = "Price"
	ColPaid        = "Paid"
	ColBalance     = "Balance"
	ColStatus      = "Status"
	ColName        = "Name"
	ColPhone       = "Phone"
	ColEmail       = "Email"
	ColSpecialty   = "Specialty"
	ColDuration    = "Duration (min)"
	ColCategory    = "Category"
	ColQuantity    = "Quantity"
	ColAmount      = "Amount"
	ColDescription = "Description"
	ColAdded       = "Added"
	MoneyDecimals  = 2
)

// -----------------------------------------------------------------------------
// Filter Kinds & Formats
// -----------------------------------------------------------------------------

const (
	FilterAll     = "all"
	FilterDay     = "day"
	FilterDate    = "date" // alias of FilterDay accepted by the predicate engine
	FilterMonth   = "month"
	FilterYear    = "year"
	PatternMonth  = `^\d{4}-\d{2}$`
	PatternDay    = `^\d{4}-\d{2}-\d{2}$`
	LayoutISODay  = "2006-01-02"
	LayoutISOMon  = "2006-01"
	LayoutDisplay = "02/01/2006"
	LayoutDispTS  = "02/01/2006 15:04"
	// FileNameSeparator joins page name, filter kind and filter value in export file names.
	FileNameSeparator = "_"
)

// StrictDateLayouts are tried, in order, before the lenient textual parser.
var StrictDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	LayoutISODay,
	LayoutISOMon,
}

// Bounds of a calendar year accepted from the lenient textual parser.
const (
	MinDateYear = 1
	MaxDateYear = 9999
)

// DateWords are the words a textual date may contain besides zone
// abbreviations. Anything else marks the value as free text.
var DateWords = []string{
	"jan", "january", "feb", "february", "mar", "march", "apr", "april", "may",
	"jun", "june", "jul", "july", "aug", "august", "sep", "sept", "september",
	"oct", "october", "nov", "november", "dec", "december",
	"mon", "monday", "tue", "tues", "tuesday", "wed", "wednesday", "thu", "thur",
	"thurs", "thursday", "fri", "friday", "sat", "saturday", "sun", "sunday",
	"am", "pm", "t", "z", "st", "nd", "rd", "th", "of", "at", "utc", "gmt",
}

// -----------------------------------------------------------------------------
// Export
// -----------------------------------------------------------------------------

const (
	ExportSheetName    = "Report"
	ExportDefaultSheet = "Sheet1"
	ExportExt          = ".xlsx"
	ExportTempPattern  = ".export-*.tmp"
	ExportColumnPrefix = "Column "
	ExportSourceRows   = "rows"
	ExportSourceTable  = "table"
	ReportDocumentName = "report.xlsx"
	HTMLAttrHidden     = "hidden"
	HTMLAttrStyle      = "style"
	HTMLAttrColspan    = "colspan"
	CSSDisplayNone     = "display:none"
	CSSVisHidden       = "visibility:hidden"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 1100
	MainWindowHeight    = 700
	SettingsWindowWidth = 600
	NavOffset           = 0.18
	TableColumnWidth    = 150
	TablePlaceholder    = "Cell Content"
	LayoutColumnsDouble = 2
	PlaceholderURL      = "http://localhost:5000/api"

	// Preference Keys
	PrefBackendURL = "backend_url"
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefExportDir  = "export_dir"
	PrefLastRun    = "last_run_version"
	PrefLastRoute  = "last_route"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle         = "win_title"
	TKeyWinSettings      = "win_settings_title"
	TKeyTitleAll         = "title_all_time"
	TKeyTitleMonth       = "title_month"   // Requires Month, Year
	TKeyTitleYear        = "title_year"    // Requires Year
	TKeyTitleGeneric     = "title_generic" // Incomplete filter
	TKeyFilterAll        = "filter_all"
	TKeyFilterDay        = "filter_day"
	TKeyFilterMonth      = "filter_month"
	TKeyFilterYear       = "filter_year"
	TKeyBtnExport        = "btn_export"
	TKeyBtnSettings      = "btn_settings"
	TKeyBtnRefresh       = "btn_refresh"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyNotifExportOK    = "notif_export_success" // Requires File, Count
	TKeyNotifExportErr   = "notif_export_error"   // Requires Error
	TKeyNotifNoData      = "notif_export_no_data"
	TKeyNotifFetchErr    = "notif_fetch_error"
	TKeyLblBackend       = "lbl_backend_url"
	TKeyLblToken         = "lbl_api_token"
	TKeyLblLanguage      = "lbl_language"
	TKeyLblPort          = "lbl_server_port"
	TKeyLblExportDir     = "lbl_export_dir"
	TKeyLblRecords       = "lbl_records" // Requires Count
	TKeyLblTotal         = "lbl_total"   // Requires Total
	TKeyPhDay            = "placeholder_day"
	TKeyErrPortReq       = "err_port_required"
	TKeyErrPortNum       = "err_port_number"
	TKeyErrPortRange     = "err_port_range"
	TKeyErrDayFormat     = "err_day_format"
	TKeyMonthPrefix      = "month_" // month_1 .. month_12
	TKeyPagePrefix       = "page_"  // page_dashboard, page_bookings, ...
	TKeyLblFooter        = "lbl_footer"
	TKeyLblSelectMonth   = "lbl_select_month"
	TKeyLblSelectYear    = "lbl_select_year"
	TKeyLblSelectDay     = "lbl_select_day"
	TKeyBtnBrowse        = "btn_browse"
	TKeyBtnDelete        = "btn_delete"
	TKeyDlgDelete        = "dlg_delete_confirm" // Requires Count
	TKeyNotifDeleteErr   = "notif_delete_error" // Requires Error
	TKeyPageDashboard    = "dashboard" // page key of the root route
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort       = "18090"
	DefaultLanguage   = "en"
	DefaultBackendURL = "http://localhost:5000/api"
	DefaultRoute      = RouteDashboard
	MinPort           = 1
	MaxPort           = 65535
	MonthsInYear      = 12
	UIDNamespace      = "go-salon"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Salon//Bookings//EN"
	ICalCalName = "Salon Bookings"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gosalon"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	DefaultICalRefresh     = 1 * time.Hour
	DefaultBookingDuration = 1 * time.Hour
	FormatBookingSummary   = "%s - %s" // service, customer
	FormatUID              = "%s@%s"
	LayoutBookingTime      = "15:04"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	CalendarDocumentName = "bookings.ics"
	RosterDocumentName   = "roster.vcf"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
	BearerPrefix        = "Bearer "
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderContentDisp     = "Content-Disposition"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAuthorization   = "Authorization"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeVCard           = "text/vcard; charset=utf-8"
	MimeXLSX            = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
	// FormatAttachment expects a file name.
	FormatAttachment = `attachment; filename="%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrBackendMissing  = "configuration error: backend URL is empty"
	ErrBackendStatus   = "backend returned unexpected status"
	ErrBackendDecode   = "failed to decode backend response"
	ErrBulkDelete      = "bulk delete partially failed"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrNoExportData    = "no data available to export"
	ErrWorkbookBuild   = "failed to build workbook"
	ErrWorkbookStyle   = "failed to style workbook header"
	ErrWorkbookWrite   = "failed to write workbook"
	ErrTableSnapshot   = "failed to read table snapshot"
	ErrHTMLParse       = "failed to parse HTML document"
	ErrExportDir       = "could not prepare export directory"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocNotInit      = "localizer not initialized"
	ErrSettingsRead    = "read settings file"
	ErrSettingsParse   = "parse settings file"
	ErrSettingsEnvPort = "invalid " + EnvPrefix + "SERVER_PORT"
	ErrTokenStore      = "failed to store API token"
	ErrPageFetch       = "failed to load page records"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Document not published yet, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackTitleAll     = "All Time Overview"
	FallbackTitleMonth   = "%s %s" // month name, year
	FallbackTitleYear    = "%s Overview"
	FallbackTitleGeneric = "Overview"
	FallbackExportOK     = "Exported %s (%d rows)"
	FallbackExportErr    = "Export failed: %s"
	FallbackNoData       = "No data available to export"
	FallbackCustomer     = "Walk-in"
	FallbackService      = "Appointment"
	FallbackName         = "Unknown"

	TitleStartupError = "Startup Error"
	TitleExport       = "Export"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgDocPublished    = "Document published"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgTokenFail       = "API token retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgFilterChanged   = "Filter changed"
	MsgViewChanged     = "Active view changed"
	MsgRowsRegistered  = "Export rows registered"
	MsgExportStarted   = "Export started"
	MsgExportDone      = "Export written"
	MsgExportFailed    = "Export failed"
	MsgExportFallback  = "No registered rows, scanning table snapshot"
	MsgPageLoaded      = "Page records loaded"
	MsgPageStale       = "Discarding stale page fetch"
	MsgPageRecompute   = "Page recompute superseded, recomputing"
	MsgPageMounted     = "Page mounted"
	MsgPageUnmounted   = "Page unmounted"
	MsgSkippedBooking  = "Skipping booking without a parsable date"
	MsgCalendarBuilt   = "Booking calendar generated"
	MsgRosterBuilt     = "Stylist roster generated"
	MsgDeleteFailed    = "Delete request failed"
	MsgSettingsLoaded  = "Settings loaded"
	MsgSettingsSaving  = "Saving preferences"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgPageSelected    = "Page selected"
	MsgRecordsDeleted  = "Records deleted"
	MsgRosterFailed    = "Stylist roster could not be published"
	MsgBackendRequest  = "Backend request"
	MsgBackendBadState = "Backend returned error status"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyView      = "view"
	LogKeyKind      = "kind"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeySource    = "source"
	LogKeyExportID  = "export_id"
	LogKeyResource  = "resource"
	LogKeyID        = "id"
	LogKeyDocument  = "document"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"
	LogKeyCommit    = "commit"
	LogKeyBuilt     = "built"
	LogKeyPath      = "path"
	LogKeySkipped   = "skipped"
	LogKeyMethod    = "method"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompStore   = "viewstate"
	CompExport  = "export"
	CompPages   = "pages"
	CompBackend = "backend"
	CompFeeds   = "feeds"
	CompServer  = "server"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompConfig  = "config"
)
