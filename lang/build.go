package lang

import "strings"

// Resolver maps an identifier to a labeled property for the concrete
// record type C. It is the only seam through which the host's record
// semantics enter the compiler. Unknown names are reported with
// [NoSuchKeywordError] at the given span.
//
// Resolvers must be free of mutable state: the properties they return
// are captured in the compiled tree and invoked concurrently.
type Resolver[C any] func(name string, span Span) (Labeled[C], error)

// buildExpression recursively turns an AST node into an expression,
// resolving identifiers, dispatching methods and builtins, and
// checking arity and types. The first error aborts the build.
func buildExpression[C any](
	node *ExpressionNode,
	resolve Resolver[C],
) (expression[C], error) {
	switch node.Kind {
	case ExprIdentifier:
		labeled, err := resolve(node.Name, node.Span)
		if err != nil {
			return expression[C]{}, err
		}

		return propertyExpression(labeled), nil

	case ExprInteger:
		return propertyExpression(
			NewLabeled(ConstantInteger[C](node.Integer)),
		), nil

	case ExprString:
		return propertyExpression(
			NewLabeled(ConstantString[C](node.Text)),
		), nil

	case ExprList:
		contents := make([]Template[C], 0, len(node.List))

		for _, child := range node.List {
			expr, err := buildExpression(child, resolve)
			if err != nil {
				return expression[C]{}, err
			}

			contents = append(contents, expr.intoTemplate())
		}

		return templateExpression(ConcatTemplate(contents...)), nil

	case ExprFunctionCall:
		return buildGlobalFunction(node.Call, resolve)

	case ExprMethodCall:
		return buildMethodCall(node.Method, resolve)

	default:
		panic("unexpected expression kind")
	}
}

// buildGlobalFunction dispatches a call by name against the builtin
// table. Extending the language means adding cases here, never
// subclassing.
func buildGlobalFunction[C any](
	fn *FunctionCallNode,
	resolve Resolver[C],
) (expression[C], error) {
	switch fn.Name {
	case "label":
		args, err := expectExactArgs(fn, 2)
		if err != nil {
			return expression[C]{}, err
		}

		labelExpr, err := buildExpression(args[0], resolve)
		if err != nil {
			return expression[C]{}, err
		}

		content, err := buildExpression(args[1], resolve)
		if err != nil {
			return expression[C]{}, err
		}

		// The label text is itself a per-record computation: split on
		// whitespace at render time, not at build time.
		labelText := labelExpr.intoPlainText()
		labels := func(rec C) []string {
			return strings.Fields(labelText(rec))
		}

		return templateExpression(
			LabelTemplate(content.intoTemplate(), labels),
		), nil

	case "if":
		required, optional, err := expectArgs(fn, 2, 1)
		if err != nil {
			return expression[C]{}, err
		}

		condExpr, err := buildExpression(required[0], resolve)
		if err != nil {
			return expression[C]{}, err
		}

		condition, ok := condExpr.tryIntoBoolean()
		if !ok {
			return expression[C]{}, invalidArgumentType(
				"Boolean", required[0].Span,
			)
		}

		trueExpr, err := buildExpression(required[1], resolve)
		if err != nil {
			return expression[C]{}, err
		}

		var falseBranch Template[C]

		if len(optional) > 0 {
			falseExpr, err := buildExpression(optional[0], resolve)
			if err != nil {
				return expression[C]{}, err
			}

			falseBranch = falseExpr.intoTemplate()
		}

		return templateExpression(ConditionalTemplate(
			condition, trueExpr.intoTemplate(), falseBranch,
		)), nil

	case "separate":
		required, rest, err := expectSomeArgs(fn, 1)
		if err != nil {
			return expression[C]{}, err
		}

		sepExpr, err := buildExpression(required[0], resolve)
		if err != nil {
			return expression[C]{}, err
		}

		contents := make([]Template[C], 0, len(rest))

		for _, node := range rest {
			expr, err := buildExpression(node, resolve)
			if err != nil {
				return expression[C]{}, err
			}

			contents = append(contents, expr.intoTemplate())
		}

		return templateExpression(
			SeparateTemplate(sepExpr.intoTemplate(), contents),
		), nil

	default:
		return expression[C]{}, noSuchFunction(fn)
	}
}

// buildMethodCall builds the receiver, dispatches the call by the
// receiver's kind, and appends the method name to the label sequence.
// Renderable receivers have no scalar value and admit no methods.
func buildMethodCall[C any](
	method *MethodCallNode,
	resolve Resolver[C],
) (expression[C], error) {
	receiver, err := buildExpression(method.Receiver, resolve)
	if err != nil {
		return expression[C]{}, err
	}

	if receiver.isTemplate() {
		return expression[C]{}, noSuchMethod("Template", method.Call)
	}

	labeled := *receiver.property

	var property Property[C]

	switch labeled.Property.Kind() {
	case KindString:
		property, err = buildStringMethod(
			labeled.Property.str, method.Call, resolve,
		)

	case KindBoolean:
		err = noSuchMethod("Boolean", method.Call)

	case KindInteger:
		err = noSuchMethod("Integer", method.Call)

	case KindCommitOrChangeID:
		property, err = buildCommitOrChangeIDMethod(
			labeled.Property.id, method.Call, resolve,
		)

	case KindShortestIDPrefix:
		property, err = buildShortestIDPrefixMethod(
			labeled.Property.prefix, method.Call,
		)

	case KindSignature:
		property, err = buildSignatureMethod(
			labeled.Property.signature, method.Call,
		)

	case KindTimestamp:
		property, err = buildTimestampMethod(
			labeled.Property.timestamp, method.Call,
		)
	}

	if err != nil {
		return expression[C]{}, err
	}

	return propertyExpression(
		Labeled[C]{Property: property, Labels: labeled.Labels}.
			withLabel(method.Call.Name),
	), nil
}

func buildStringMethod[C any](
	self func(C) string,
	fn *FunctionCallNode,
	resolve Resolver[C],
) (Property[C], error) {
	switch fn.Name {
	case "contains":
		args, err := expectExactArgs(fn, 1)
		if err != nil {
			return Property[C]{}, err
		}

		needleExpr, err := buildExpression(args[0], resolve)
		if err != nil {
			return Property[C]{}, err
		}

		needle := needleExpr.intoPlainText()

		return BooleanProperty(func(rec C) bool {
			return strings.Contains(self(rec), needle(rec))
		}), nil

	case "first_line":
		if err := expectNoArgs(fn); err != nil {
			return Property[C]{}, err
		}

		return StringProperty(func(rec C) string {
			first, _, _ := strings.Cut(self(rec), "\n")

			return first
		}), nil

	default:
		return Property[C]{}, noSuchMethod("String", fn)
	}
}

func buildCommitOrChangeIDMethod[C any](
	self func(C) CommitOrChangeID,
	fn *FunctionCallNode,
	resolve Resolver[C],
) (Property[C], error) {
	// Both methods take one optional Integer length argument.
	parseOptionalLength := func() (func(C) int64, error) {
		_, optional, err := expectArgs(fn, 0, 1)
		if err != nil {
			return nil, err
		}

		if len(optional) == 0 {
			return nil, nil
		}

		lenExpr, err := buildExpression(optional[0], resolve)
		if err != nil {
			return nil, err
		}

		length, ok := lenExpr.tryIntoInteger()
		if !ok {
			return nil, invalidArgumentType("Integer", optional[0].Span)
		}

		return length, nil
	}

	switch fn.Name {
	case "short":
		length, err := parseOptionalLength()
		if err != nil {
			return Property[C]{}, err
		}

		return StringProperty(func(rec C) string {
			return self(rec).Short(displayLength(length, rec, 12))
		}), nil

	case "shortest":
		length, err := parseOptionalLength()
		if err != nil {
			return Property[C]{}, err
		}

		return ShortestIDPrefixProperty(func(rec C) ShortestIDPrefix {
			return self(rec).Shortest(displayLength(length, rec, 0))
		}), nil

	default:
		return Property[C]{}, noSuchMethod("CommitOrChangeId", fn)
	}
}

// displayLength evaluates an optional length property, substituting
// the default for an absent argument or a negative value.
func displayLength[C any](
	length func(C) int64,
	rec C,
	fallback int,
) int {
	if length == nil {
		return fallback
	}

	if v := length(rec); v >= 0 {
		return int(v)
	}

	return fallback
}

func buildShortestIDPrefixMethod[C any](
	self func(C) ShortestIDPrefix,
	fn *FunctionCallNode,
) (Property[C], error) {
	switch fn.Name {
	case "with_brackets":
		if err := expectNoArgs(fn); err != nil {
			return Property[C]{}, err
		}

		return StringProperty(func(rec C) string {
			return self(rec).WithBrackets()
		}), nil

	default:
		return Property[C]{}, noSuchMethod("ShortestIdPrefix", fn)
	}
}

func buildSignatureMethod[C any](
	self func(C) Signature,
	fn *FunctionCallNode,
) (Property[C], error) {
	// The method name resolves before its arity is checked, so an
	// unknown name with arguments still reports the missing method.
	var property Property[C]

	switch fn.Name {
	case "name":
		property = StringProperty(func(rec C) string {
			return self(rec).Name
		})

	case "email":
		property = StringProperty(func(rec C) string {
			return self(rec).Email
		})

	case "username":
		property = StringProperty(func(rec C) string {
			return self(rec).Username()
		})

	case "timestamp":
		property = TimestampProperty(func(rec C) Timestamp {
			return self(rec).Timestamp
		})

	default:
		return Property[C]{}, noSuchMethod("Signature", fn)
	}

	if err := expectNoArgs(fn); err != nil {
		return Property[C]{}, err
	}

	return property, nil
}

func buildTimestampMethod[C any](
	self func(C) Timestamp,
	fn *FunctionCallNode,
) (Property[C], error) {
	switch fn.Name {
	case "ago":
		if err := expectNoArgs(fn); err != nil {
			return Property[C]{}, err
		}

		return StringProperty(func(rec C) string {
			return self(rec).Ago()
		}), nil

	default:
		return Property[C]{}, noSuchMethod("Timestamp", fn)
	}
}

// Argument-arity checks. Each shape produces a distinct error carrying
// the expected count and the call's argument-list span.

// expectNoArgs requires an empty argument list.
func expectNoArgs(fn *FunctionCallNode) error {
	if len(fn.Args) != 0 {
		return invalidArgumentCountExact(0, fn.ArgsSpan)
	}

	return nil
}

// expectExactArgs requires exactly n arguments.
func expectExactArgs(
	fn *FunctionCallNode,
	n int,
) ([]*ExpressionNode, error) {
	if len(fn.Args) != n {
		return nil, invalidArgumentCountExact(n, fn.ArgsSpan)
	}

	return fn.Args, nil
}

// expectSomeArgs requires at least n arguments and returns the first n
// plus the remainder.
func expectSomeArgs(
	fn *FunctionCallNode,
	n int,
) (required, rest []*ExpressionNode, err error) {
	if len(fn.Args) < n {
		return nil, nil, invalidArgumentCountRangeFrom(n, fn.ArgsSpan)
	}

	return fn.Args[:n], fn.Args[n:], nil
}

// expectArgs requires n required arguments plus up to m optional ones.
// Missing optionals are simply absent from the returned slice.
func expectArgs(
	fn *FunctionCallNode,
	n, m int,
) (required, optional []*ExpressionNode, err error) {
	if len(fn.Args) < n || len(fn.Args) > n+m {
		return nil, nil, invalidArgumentCountRange(n, n+m, fn.ArgsSpan)
	}

	return fn.Args[:n], fn.Args[n:], nil
}
