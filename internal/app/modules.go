package app

import (
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/modules/docs"
	"github.com/specialistvlad/gridtask/modules/format"
	"github.com/specialistvlad/gridtask/modules/generate"
	"github.com/specialistvlad/gridtask/modules/lint"
	"github.com/specialistvlad/gridtask/modules/testsuite"
)

// coreModules is the definitive list of all modules that are compiled into
// the gridtask binary.
var coreModules = []registry.Module{
	&testsuite.Module{},
	&format.Module{},
	&lint.Module{},
	&docs.Module{},
	&generate.Module{},
}
