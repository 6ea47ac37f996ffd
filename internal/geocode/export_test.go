package geocode

// SetJoinHook installs a callback run after a Resolve call has attached to
// the in-flight lookup for its key.
func SetJoinHook(s *Service, f func(key string)) { s.joined = f }
