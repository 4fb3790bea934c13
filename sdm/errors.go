package sdm

import "fmt"

// LoadError represents a dlopen failure.
type LoadError struct {
	// Name of the shared object passed to dlopen.
	Name string
	// Message returned by dlerror.
	Detail string
}

func (e *LoadError) Error() string { return fmt.Sprintf("cannot load %q: %s", e.Name, e.Detail) }

func (e *LoadError) Is(err error) bool {
	if e == nil {
		return err == nil
	}
	ef, ok := err.(*LoadError)
	return ok && *e == *ef
}

// UnloadError represents a dlclose failure.
type UnloadError struct {
	// Message returned by dlerror.
	Detail string
}

func (e *UnloadError) Error() string { return "cannot unload vendor library: " + e.Detail }

func (e *UnloadError) Is(err error) bool {
	if e == nil {
		return err == nil
	}
	ef, ok := err.(*UnloadError)
	return ok && *e == *ef
}

// SymbolError represents a dlsym failure.
type SymbolError struct {
	// Name of the symbol passed to dlsym.
	Symbol string
	// Message returned by dlerror.
	Detail string
}

func (e *SymbolError) Error() string { return fmt.Sprintf("cannot resolve %q: %s", e.Symbol, e.Detail) }

func (e *SymbolError) Is(err error) bool {
	if e == nil {
		return err == nil
	}
	ef, ok := err.(*SymbolError)
	return ok && *e == *ef
}

// CallError represents a nonzero status returned by a vendor library function.
type CallError struct {
	// User facing name of the vendor function returning the error.
	Func string
	// Status value returned by the call.
	Status int32
}

func (e *CallError) Error() string { return fmt.Sprintf("%s returned %d", e.Func, e.Status) }

func (e *CallError) Is(err error) bool {
	if e == nil {
		return err == nil
	}
	ef, ok := err.(*CallError)
	return ok && *e == *ef
}
