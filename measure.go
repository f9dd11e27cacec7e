package logger

// Measure wraps a function with performance tracking. The returned function
// starts a timer, invokes fn, and ends the timer at the given level once fn
// returns, propagating fn's result and error unchanged. A panic inside fn
// ends the timer at error severity and re-panics.
//
//	fetch := logger.Measure(log, "fetch-user", logger.InfoLevel, loadUser)
//	user, err := fetch()
func Measure[T any](log Logger, operation string, level Level, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		id := log.StartPerformance(operation, nil)

		defer func() {
			if r := recover(); r != nil {
				log.EndPerformance(id, ErrorLevel)
				panic(r)
			}
		}()

		result, err := fn()

		log.EndPerformance(id, level)

		return result, err
	}
}
