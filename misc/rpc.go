package misc

// Nothing is the argument or reply of rpc methods that do not need one
type Nothing struct{}
