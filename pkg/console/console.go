// Package console предоставляет построчный ввод для интерактивного режима.
//
// Console оборачивает пару (reader, writer): приглашение печатается в writer,
// ответ читается из reader. Поддерживает и интерактивный терминал, и pipe —
// незавершённая последняя строка перед EOF обрабатывается как обычный ввод.
//
// Rule 6: Библиотечный код без зависимости от os.Stdin — источники ввода и
// вывода передаются явно, что позволяет тестировать через strings.Reader.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console читает ответы пользователя построчно.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
}

// New создает консоль поверх произвольных reader/writer.
//
// Для реального приложения: console.New(os.Stdin, os.Stdout).
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine печатает приглашение и возвращает строку без пробелов по краям.
//
// io.EOF возвращается вызывающему как есть — главный цикл завершает
// работу по нему. Незавершённая строка перед EOF (pipe без последнего
// перевода строки) возвращается как обычный ввод.
func (c *Console) ReadLine(promptText string) (string, error) {
	if promptText != "" {
		fmt.Fprint(c.out, promptText)
	}

	line, err := c.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// ReadInt печатает приглашение и возвращает введённое число.
//
// Пустой или нечисловой ввод возвращает значение по умолчанию:
// пользователь жмет Enter и получает разумное поведение вместо ошибки.
func (c *Console) ReadInt(promptText string, defaultValue int) (int, error) {
	line, err := c.ReadLine(promptText)
	if err != nil {
		return defaultValue, err
	}
	if line == "" {
		return defaultValue, nil
	}

	value, convErr := strconv.Atoi(line)
	if convErr != nil {
		return defaultValue, nil
	}
	return value, nil
}

// Confirm печатает да/нет вопрос и возвращает ответ.
//
// Положительным считается "y" или "yes" в любом регистре, всё остальное — нет.
func (c *Console) Confirm(promptText string) (bool, error) {
	line, err := c.ReadLine(promptText)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
