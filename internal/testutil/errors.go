package testutil

import "errors"

// ErrSimulated - sentinel для проверки путей обработки ошибок (падающий store и т.п.).
var ErrSimulated = errors.New("simulated error for testing")
