package env

// SetLookPath replaces the interpreter lookup used by Provision.
func (v *Venv) SetLookPath(f func(string) (string, error)) {
	v.lookPath = f
}
