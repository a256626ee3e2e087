// Package sitesignal derives structured business signals from a single
// company web page: organization name, industry, company-size tier,
// locations, tagline, and contact details. It fetches one URL per request,
// runs a best-effort extraction pipeline, and returns a deterministic,
// fully-shaped result even when individual signals cannot be determined.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, nominatim/, sqlite/).
package sitesignal
