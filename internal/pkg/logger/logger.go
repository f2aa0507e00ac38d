package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// LogEntry define a estrutura de um log para garantir o formato JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Service   string                 `json:"service,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Níveis suportados, em ordem crescente de severidade.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

// SimpleLogger é a implementação concreta da interface Logger com saída JSON por linha.
type SimpleLogger struct {
	minRank int
	service string
	out     io.Writer
	mu      sync.Mutex
	exit    func(code int)
}

// NewLogger cria e retorna uma nova instância do Logger escrevendo em stdout.
// Níveis desconhecidos caem para "info".
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stdout)
}

// NewLoggerWithWriter permite redirecionar a saída (usado em testes).
func NewLoggerWithWriter(level string, out io.Writer) *SimpleLogger {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &SimpleLogger{
		minRank: rank,
		service: "clinicstock",
		out:     out,
		exit:    os.Exit,
	}
}

// logf formata a entrada como JSON e a escreve na saída configurada.
func (l *SimpleLogger) logf(level, msg string, fields map[string]interface{}, err error) {
	if levelRank[level] < l.minRank {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     strings.ToUpper(level),
		Service:   l.service,
		Message:   msg,
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}
	if err != nil {
		entry.Error = err.Error()
	}

	jsonBytes, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Campo não serializável: registra a mensagem sem os campos.
		entry.Fields = nil
		entry.Error = marshalErr.Error()
		jsonBytes, _ = json.Marshal(entry)
	}

	l.mu.Lock()
	l.out.Write(append(jsonBytes, '\n'))
	l.mu.Unlock()

	if level == LevelFatal {
		l.exit(1)
	}
}

func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	l.logf(LevelDebug, msg, fields, nil)
}

func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	l.logf(LevelInfo, msg, fields, nil)
}

func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	l.logf(LevelWarn, msg, fields, nil)
}

func (l *SimpleLogger) Error(msg string, err error) {
	l.logf(LevelError, msg, nil, err)
}

func (l *SimpleLogger) Fatal(msg string, err error) {
	l.logf(LevelFatal, msg, nil, err)
}

// Nop devolve um Logger que descarta tudo.
func Nop() Logger {
	return NewLoggerWithWriter(LevelFatal, io.Discard)
}
