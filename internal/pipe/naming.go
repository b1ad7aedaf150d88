package pipe

// FuncStr generates a stage print string such as
// `my_stage_name(["ctxVar1"], ["ctxVar2"])`
// from the inputs FuncStr("my_stage_name", "ctxVar1", "ctxVar2")
func FuncStr(name string, ctxDependencies ...string) string {

	params := "("
	for i, dep := range ctxDependencies {
		params += "[\"" + dep + "\"]"
		if i < len(ctxDependencies)-1 {
			params += ", "
		}
	}
	params += ")"

	return name + params
}

// CtxOutStr generates a string such as
// ` => ["ctxOutVar1"], ["ctxOutVar2"]`
// from the inputs CtxOutStr("ctxOutVar1", "ctxOutVar2")
func CtxOutStr(ctxOutputs ...string) string {

	if len(ctxOutputs) == 0 {
		return ""
	}

	ctxOut := " => "
	for i, out := range ctxOutputs {
		ctxOut += "[\"" + out + "\"]"
		if i < len(ctxOutputs)-1 {
			ctxOut += ", "
		}
	}

	return ctxOut
}
