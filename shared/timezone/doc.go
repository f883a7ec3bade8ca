// Package timezone provides the application clock.
//
// Usage Examples:
//
//  1. Production wiring:
//     clock := timezone.New(cfg)              // clock in APP_TIMEZONE
//     now := clock.Now()                      // current time in app timezone
//     today := clock.Today()                  // calendar date at 00:00 UTC
//
//  2. Deterministic tests:
//     clock := timezone.NewFixed(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC))
//
//  3. Formatting and parsing in the app timezone:
//     formatted := timezone.Format(clock, t, "2006-01-02 15:04:05")
//     t, err := timezone.Parse(clock, "2006-01-02", "2024-01-01")
//
// Supported timezone formats:
// - Standard timezone names only: "UTC", "Asia/Ho_Chi_Minh", "America/New_York", "Europe/London"
//
// Components that need timestamps receive a Clock through their constructor
// instead of reading the wall clock themselves.
package timezone
