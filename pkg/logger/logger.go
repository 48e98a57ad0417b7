package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DEBUG = iota
	INFO
	WARN
	ERROR
)

var levelName = map[int][]byte{
	DEBUG: []byte("DEBUG"),
	INFO:  []byte("INFO"),
	WARN:  []byte("WARN"),
	ERROR: []byte("ERROR"),
}

var levelColor = map[int][]byte{
	DEBUG: BLUE,
	INFO:  GREEN,
	WARN:  YELLOW,
	ERROR: RED,
}

// ParseLevel converts a config string into a log level, defaulting to DEBUG.
func ParseLevel(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return DEBUG
	}
}

var (
	RED     = []byte{27, 91, 51, 49, 109}
	GREEN   = []byte{27, 91, 51, 50, 109}
	YELLOW  = []byte{27, 91, 51, 51, 109}
	BLUE    = []byte{27, 91, 51, 52, 109}
	MAGENTA = []byte{27, 91, 51, 53, 109}
	CYAN    = []byte{27, 91, 51, 54, 109}
	RESET   = []byte{27, 91, 48, 109}
)

var (
	LOG  *Logger = nil
	CONF *Config = nil
)

const (
	DefaultFileMaxSize = 10485760
	LogInfoChanSize    = 1000
	MaxWriteCacheNum   = 1000
)

type Config struct {
	AppName      string
	Level        int
	TrackLine    bool
	TrackThread  bool
	EnableFile   bool
	FileDir      string
	FileMaxSize  int64
	DisableColor bool
	EnableJson   bool
}

type Logger struct {
	file          *os.File
	logInfoChan   chan *logInfo
	writeBuf      []byte
	writeCacheNum int
	closeChan     chan struct{}
}

type logInfo struct {
	time        time.Time
	level       int
	msg         []byte
	fileName    string
	funcName    string
	line        int
	goroutineId string
}

// InitLogger starts the background writer. A nil config logs everything to stderr.
func InitLogger(config *Config) {
	if config == nil {
		config = &Config{
			AppName:   "navsvr",
			Level:     DEBUG,
			TrackLine: true,
		}
	}
	CONF = config
	if CONF.FileMaxSize == 0 {
		CONF.FileMaxSize = DefaultFileMaxSize
	}
	if CONF.FileDir == "" {
		CONF.FileDir = "./log"
	}
	LOG = &Logger{
		logInfoChan: make(chan *logInfo, LogInfoChanSize),
		writeBuf:    make([]byte, 0, 4096),
		closeChan:   make(chan struct{}),
	}
	go LOG.doLog()
}

// CloseLogger drains pending records and stops the writer.
func CloseLogger() {
	if LOG == nil {
		return
	}
	LOG.closeChan <- struct{}{}
	<-LOG.closeChan
	if LOG.file != nil {
		_ = LOG.file.Close()
	}
	LOG = nil
}

func (l *Logger) doLog() {
	var logBuf bytes.Buffer
	timeBuf := make([]byte, 0, 64)
	exit := false
	for {
		select {
		case <-l.closeChan:
			exit = true
		case info := <-l.logInfoChan:
			l.render(&logBuf, timeBuf[:0], info)
			l.writeLog(logBuf.Bytes())
			logBuf.Reset()
			logInfoPool.Put(info)
			continue
		}
		if exit {
			for len(l.logInfoChan) > 0 {
				info := <-l.logInfoChan
				l.render(&logBuf, timeBuf[:0], info)
				l.writeLog(logBuf.Bytes())
				logBuf.Reset()
			}
			l.flush()
			l.closeChan <- struct{}{}
			return
		}
	}
}

func (l *Logger) render(buf *bytes.Buffer, timeBuf []byte, info *logInfo) {
	color := !CONF.DisableColor
	if color {
		buf.Write(CYAN)
	}
	buf.WriteByte('[')
	buf.Write(info.time.AppendFormat(timeBuf, "2006-01-02 15:04:05.000"))
	buf.WriteByte(']')
	if color {
		buf.Write(RESET)
	}
	buf.WriteByte(' ')
	if color {
		buf.Write(levelColor[info.level])
	}
	buf.WriteByte('[')
	buf.Write(levelName[info.level])
	buf.WriteByte(']')
	if color {
		buf.Write(RESET)
	}
	buf.WriteByte(' ')
	if color && info.level == ERROR {
		buf.Write(RED)
		buf.Write(info.msg)
		buf.Write(RESET)
	} else {
		buf.Write(info.msg)
	}
	if info.line != 0 {
		buf.WriteByte(' ')
		if color {
			buf.Write(MAGENTA)
		}
		buf.WriteByte('[')
		buf.WriteString(info.fileName)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(info.line))
		buf.WriteByte(' ')
		buf.WriteString(info.funcName)
		buf.WriteString("()")
		if info.goroutineId != "" {
			buf.WriteString(" goroutine:")
			buf.WriteString(info.goroutineId)
		}
		buf.WriteByte(']')
		if color {
			buf.Write(RESET)
		}
	}
	buf.WriteByte('\n')
}

func (l *Logger) writeLog(logData []byte) {
	l.writeBuf = append(l.writeBuf, logData...)
	l.writeCacheNum++
	if len(l.logInfoChan) != 0 && l.writeCacheNum < MaxWriteCacheNum {
		return
	}
	l.flush()
}

func (l *Logger) flush() {
	if len(l.writeBuf) == 0 {
		return
	}
	_, _ = os.Stderr.Write(l.writeBuf)
	if CONF.EnableFile {
		l.writeLogFile(l.writeBuf)
	}
	l.writeBuf = l.writeBuf[:0]
	l.writeCacheNum = 0
}

func (l *Logger) writeLogFile(logData []byte) {
	fileName := filepath.Join(CONF.FileDir, CONF.AppName+".log")
	if l.file == nil {
		_ = os.MkdirAll(CONF.FileDir, 0755)
		file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "open log file error: %v\n", err)
			return
		}
		l.file = file
	}
	stat, err := l.file.Stat()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "stat log file error: %v\n", err)
		return
	}
	if stat.Size() >= CONF.FileMaxSize {
		_ = l.file.Close()
		l.file = nil
		err = os.Rename(fileName, fileName+"."+time.Now().Format("20060102150405")+".log")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "rotate log file error: %v\n", err)
			return
		}
		l.writeLogFile(logData)
		return
	}
	if _, err = l.file.Write(logData); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write log file error: %v\n", err)
	}
}

var logInfoPool = sync.Pool{New: func() any { return new(logInfo) }}

func formatLog(level int, msg string, param []any) {
	if CONF.EnableJson {
		jsonList := make([]any, 0, len(param))
		for _, obj := range param {
			data, _ := json.Marshal(obj)
			jsonList = append(jsonList, string(data))
		}
		param = jsonList
	}
	info := logInfoPool.Get().(*logInfo)
	info.time = time.Now()
	info.level = level
	info.msg = fmt.Appendf(info.msg[:0], msg, param...)
	info.fileName, info.line, info.funcName, info.goroutineId = "", 0, "", ""
	if CONF.TrackLine {
		info.fileName, info.line, info.funcName = getLineFunc()
	}
	if CONF.TrackThread {
		info.goroutineId = getGoroutineId()
	}
	LOG.logInfoChan <- info
}

func enabled(level int) bool {
	return LOG != nil && CONF.Level <= level
}

func Debug(msg string, param ...any) {
	if !enabled(DEBUG) {
		return
	}
	formatLog(DEBUG, msg, param)
}

func Info(msg string, param ...any) {
	if !enabled(INFO) {
		return
	}
	formatLog(INFO, msg, param)
}

func Warn(msg string, param ...any) {
	if !enabled(WARN) {
		return
	}
	formatLog(WARN, msg, param)
}

func Error(msg string, param ...any) {
	if !enabled(ERROR) {
		return
	}
	formatLog(ERROR, msg, param)
}

func getGoroutineId() string {
	buf := make([]byte, 32)
	n := runtime.Stack(buf, false)
	buf = bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

func getLineFunc() (fileName string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(3)
	if !ok {
		return "???", -1, "???"
	}
	fileName = path.Base(file)
	funcName = runtime.FuncForPC(pc).Name()
	if i := strings.LastIndexByte(funcName, '.'); i >= 0 {
		funcName = funcName[i+1:]
	}
	return fileName, line, funcName
}

func Stack() string {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, 2*len(buf))
	}
}
