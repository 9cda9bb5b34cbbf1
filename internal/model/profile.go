package model

// Profile selects the device strategy the scoring API applies to a page.
type Profile string

const (
	// ProfileMobile scores the page as rendered on a throttled mobile device.
	ProfileMobile Profile = "mobile"
	// ProfileDesktop scores the page as rendered on a desktop browser.
	ProfileDesktop Profile = "desktop"
)

// Profiles returns every profile in the fixed order used by reports.
func Profiles() []Profile {
	return []Profile{ProfileMobile, ProfileDesktop}
}

// String returns the strategy name sent upstream.
func (p Profile) String() string {
	return string(p)
}

// Valid reports whether p is a known profile.
func (p Profile) Valid() bool {
	return p == ProfileMobile || p == ProfileDesktop
}

// Status tags the outcome of a single URL evaluation.
type Status string

const (
	// StatusSuccess marks a record whose metrics were extracted from both profiles.
	StatusSuccess Status = "success"
	// StatusFailed marks a placeholder record for a URL that could not be evaluated.
	StatusFailed Status = "failed"
)

// String returns the status tag.
func (s Status) String() string {
	return string(s)
}

const (
	// NotAvailable is the value of a metric the upstream payload did not carry.
	NotAvailable = "N/A"
	// ErrorValue is the value of every metric in a failed record.
	ErrorValue = "Error"
)
