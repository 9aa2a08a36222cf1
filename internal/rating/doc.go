// Package rating реализует байесовское обновление рейтингов по рангам
// (семейство алгоритмов TrueSkill).
//
// Включает:
//   - gaussian.go  — гауссианы в precision-форме и моменты усечённой нормали
//   - trueskill.go — факторный граф и sum-product передача сообщений
//   - config.go    — параметры инференса (beta, tau, draw probability)
//
// Движок работает только с парами (mu, sigma) и рангами — ему безразлично,
// что ещё содержит "игрок". Rate возвращает НОВЫЕ значения распределений;
// хранение и дисциплина блокировок — забота вызывающего.
package rating
