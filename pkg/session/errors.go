// Ошибки пакета session.
//
// Rule 7: Все ошибки возвращаются явно, никаких panic.
package session

import "fmt"

// ErrNoRuns возвращается при обращении к истории пустой сессии.
//
// Возникает когда LastRun или MarkSaved вызваны до первой генерации.
//
// Пример использования:
//
//	run, err := manager.LastRun()
//	if errors.Is(err, session.ErrNoRuns) {
//	    fmt.Println("nothing generated yet")
//	}
var ErrNoRuns = fmt.Errorf("no generation runs in session")
