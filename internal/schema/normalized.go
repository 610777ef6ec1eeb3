package schema

// NormalizedMethod is a method signature resolved into its dispatch-ready
// call shape. The receiver kind is never ReceiverNone on a normalized method.
type NormalizedMethod struct {
	Name     string       // method name
	Receiver ReceiverKind // resolved receiver kind
	Params   []ParamSpec  // declared parameters in order
	Forwards []string     // argument names in forwarded-call order
	Return   string       // verbatim return type text, empty = unit
	Async    bool         // forwarded call carries the await suffix
	Attrs    []Attribute  // attributes re-attached to the forwarding implementation
	Docs     []string     // /// doc lines carried onto the forwarder
	Origin   string       // interface the method was declared on (local or supertrait)
}
