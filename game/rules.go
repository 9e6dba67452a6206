package game

// Rules holds the numeric constants of the game.
type Rules struct {
	MaxHP               int `yaml:"max_hp"`
	StackLimit          int `yaml:"stack_limit"`
	CombatDamage        int `yaml:"combat_damage"`
	MilitiaDamage       int `yaml:"militia_damage"`
	ArcherDamage        int `yaml:"archer_damage"`
	ChargeBonus         int `yaml:"charge_bonus"`
	CounterChargeDamage int `yaml:"counter_charge_damage"`
	WinMargin           int `yaml:"win_margin"`
	StreakLength        int `yaml:"streak_length"`
}

func StandardRules() Rules {
	return Rules{
		MaxHP:               5,
		StackLimit:          2,
		CombatDamage:        2,
		MilitiaDamage:       3,
		ArcherDamage:        2,
		ChargeBonus:         2,
		CounterChargeDamage: 3,
		WinMargin:           2,
		StreakLength:        2,
	}
}

// combatDamage is what a unit contributes to its side's total in an engaged hex.
func (r Rules) combatDamage(t UnitType) int {
	if t == Militia {
		return r.MilitiaDamage
	}
	return r.CombatDamage
}
