package config

import "fmt"

// ConfigError is a non-fatal configuration problem, reported with enough
// location context for a user to find and fix it. Validation collects
// these and skips the offending entry rather than aborting the run.
type ConfigError struct {
	Location string
	Message  string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("%s: %s", e.Location, e.Message) }

// Validate compiles every MethodPattern in cfg, collecting one
// ConfigError per malformed entry rather than failing the whole load.
// Malformed entries are left with nil compiled regexes, so Resolve simply
// skips them (MethodPattern.Matches never panics on a nil regex field).
func (c *Config) Validate() []*ConfigError {
	var errs []*ConfigError
	for i := range c.EntryMethods {
		loc := fmt.Sprintf("entry-methods[%d]", i)
		if e := c.EntryMethods[i].compile(loc); e != nil {
			errs = append(errs, e)
		}
	}
	for i := range c.Taint.Sources {
		loc := fmt.Sprintf("taint.sources[%d]", i)
		if e := c.Taint.Sources[i].Pattern.compile(loc); e != nil {
			errs = append(errs, e)
		}
		if !validSlot(c.Taint.Sources[i].Slot) {
			errs = append(errs, &ConfigError{Location: loc, Message: "invalid slot: " + c.Taint.Sources[i].Slot})
		}
	}
	for i := range c.Taint.Sinks {
		loc := fmt.Sprintf("taint.sinks[%d]", i)
		if e := c.Taint.Sinks[i].Pattern.compile(loc); e != nil {
			errs = append(errs, e)
		}
		if !validSlot(c.Taint.Sinks[i].Slot) {
			errs = append(errs, &ConfigError{Location: loc, Message: "invalid slot: " + c.Taint.Sinks[i].Slot})
		}
	}
	for i := range c.Taint.Transfers {
		loc := fmt.Sprintf("taint.transfers[%d]", i)
		if e := c.Taint.Transfers[i].Pattern.compile(loc); e != nil {
			errs = append(errs, e)
		}
		if !validSlot(c.Taint.Transfers[i].From) || !validSlot(c.Taint.Transfers[i].To) {
			errs = append(errs, &ConfigError{Location: loc, Message: "invalid from/to slot"})
		}
	}
	return errs
}

func validSlot(s string) bool {
	if s == "" || s == slotResult || s == slotThis {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
