package config

// Version is the current Pyrite version.
// Set at build time by the release script via -ldflags or by writing to this file.
var Version = "0.3.1"

const SourceFileExt = ".py"

// StubFileExt is the extension of declaration-only side files merged over
// implementations.
const StubFileExt = ".pyi"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".py", ".pyi"}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Built-in method and marker names
const (
	ConstructorName = "__init__"
	SelfName        = "self"

	IterMethodName      = "__iter__"
	NextMethodName      = "__next__"
	AsyncIterMethodName = "__aiter__"
	AsyncNextMethodName = "__anext__"
	EnterMethodName     = "__enter__"
	AsyncEnterMethod    = "__aenter__"
	GetItemMethodName   = "__getitem__"

	DumpMarkerName    = "pyre_dump"
	DumpCFGMarkerName = "pyre_dump_cfg"
)

// TestConstructorNames are method names treated as constructors when a class
// is analyzed in test mode.
var TestConstructorNames = []string{"setUp", "_setup", "_async_setup", "with_context"}

// Decorator names with fixed meaning, independent of the configurable
// recognized-name sets.
const (
	CoroutineDecorator      = "asyncio.coroutines.coroutine"
	StaticMethodDecorator   = "staticmethod"
	OverloadDecorator       = "overload"
	TypingOverloadDecorator = "typing.overload"
	SetterSuffix            = ".setter"
)

// AbstractMethodDecorators mark a define as abstract.
var AbstractMethodDecorators = []string{
	"abstractmethod",
	"abc.abstractmethod",
	"abstractproperty",
	"abc.abstractproperty",
}
