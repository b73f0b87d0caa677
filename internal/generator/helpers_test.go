package generator

import (
	"fmt"
	"sync"

	"github.com/toyz/dtogen/internal/models"
)

const (
	pkg     = "github.com/acme/shop/model"
	billing = "github.com/acme/shop/billing"
)

// recordingLogger keeps every message for assertions
type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
	infos    []string
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debug(string, ...interface{}) {}

func getter(name, result string) models.MethodDescriptor {
	return models.MethodDescriptor{Name: name, Result: result}
}

func iface(name string, methods ...models.MethodDescriptor) models.TypeDescriptor {
	return ifaceIn(pkg, "model", name, methods...)
}

func ifaceIn(path, pkgName, name string, methods ...models.MethodDescriptor) models.TypeDescriptor {
	return models.TypeDescriptor{
		QualifiedName: path + "." + name,
		Package:       path,
		PackageName:   pkgName,
		Name:          name,
		Kind:          models.KindInterface,
		Methods:       methods,
		Imports: map[string]string{
			"time": "time",
			pkg:     "model",
			billing: "billing",
		},
		Source: "model/" + name + ".go:3",
	}
}

func classByName(classes []models.GeneratedClass, name string) (models.GeneratedClass, bool) {
	for _, c := range classes {
		if c.Name == name {
			return c, true
		}
	}
	return models.GeneratedClass{}, false
}
