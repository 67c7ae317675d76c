package ledger

// ValidateTierFee проверяет установку комиссии fee для уровня tier
// при текущей комиссии prevFee предыдущего уровня (prevFee == 0 для tier == 1).
//
// Правила лестницы: уровень 0 зарезервирован; комиссия строго растёт от уровня
// к уровню; уровень нельзя включить, пока не включён предыдущий. Благодаря
// этому всякий включённый уровень ниже максимального тоже включён, а нулевая
// комиссия однозначно читается как "уровень выключен".
func ValidateTierFee(tier, fee, prevFee uint64) error {
	if tier == 0 {
		return ErrInvalidTier
	}
	if fee <= prevFee {
		return ErrFeeNotIncreasing
	}
	if tier > 1 && prevFee == 0 {
		return ErrTierGap
	}
	return nil
}

// ChargeHorizon возвращает новую высоту истечения подписки: текущая высота
// плюс span единиц. Прежнее значение не участвует — каждый charge сбрасывает
// горизонт, неиспользованный остаток не накапливается.
func ChargeHorizon(currentHeight, span uint64) uint64 {
	return currentHeight + span
}
