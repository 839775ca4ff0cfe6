package model

// All lists every table for AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Option{},
		&Question{},
		&Answer{},
		&ConfigurationSession{},
		&Lead{},
	}
}
