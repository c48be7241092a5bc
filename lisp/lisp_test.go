// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/lisptest"
)

var (
	errArity         = lisptest.ErrorResult(lisp.CondArityError)
	errUnbound       = lisptest.ErrorResult(lisp.CondUnboundVariable)
	errMalformed     = lisptest.ErrorResult(lisp.CondMalformedForm)
	errMalformedCond = lisptest.ErrorResult(lisp.CondMalformedCond)
	errNative        = lisptest.ErrorResult(lisp.CondNativeError)
	errNotProcedure  = lisptest.ErrorResult(lisp.CondUnknownProcedureType)
)

func TestEval(t *testing.T) {
	tests := lisptest.TestSuite{
		{"self evaluation", lisptest.TestSequence{
			{"1000", "1000", ""},
			{"0.5", "0.5", ""},
			{`"Test string"`, `"Test string"`, ""},
			{":test/keyword", ":test/keyword", ""},
			{"true", "true", ""},
			{"nil", "nil", ""},
			{"[:a :b]", "[:a :b]", ""},
			// vector elements are not evaluated
			{"[(+ 1 2) x]", "[(+ 1 2) x]", ""},
		}},
		{"truthiness", lisptest.TestSequence{
			{`(if (true? true) "yes" "no")`, `"yes"`, ""},
			{`(if (true? false) "yes" "no")`, `"no"`, ""},
			{`(if 0 "yes" "no")`, `"yes"`, ""},
			{`(if "" "yes" "no")`, `"yes"`, ""},
			{`(if [] "yes" "no")`, `"yes"`, ""},
			{`(if '() "yes" "no")`, `"yes"`, ""},
			{`(if nil "yes" "no")`, `"no"`, ""},
			{`(if false "yes")`, "false", ""},
			{`(if nil 1)`, "false", ""},
		}},
		{"cond", lisptest.TestSequence{
			{`(cond (= "test" "test") "yes" :else "no")`, `"yes"`, ""},
			{`(cond (= "test" "fail") "yes" :else "no")`, `"no"`, ""},
			{`(cond false 1 else 2)`, "2", ""},
			{`(cond false 1 nil 2 0 3)`, "3", ""},
			{`(cond false 1 nil 2)`, "false", ""},
			{`(cond)`, "false", ""},
			{`(cond else 1 true 2)`, errMalformedCond, ""},
			{`(cond true)`, errMalformedCond, ""},
			// clauses after the match are not evaluated
			{`(cond true (println "a") true (println "b"))`, `"a"`, "a\n"},
		}},
		{"scoping", lisptest.TestSequence{
			{`(do (def a 1) (set! a 2) (if (= a 2) "yes" "no"))`, `"yes"`, ""},
			{`(def f (fn [] (def inner 1)))`, "ok", ""},
			{`(f)`, "ok", ""},
			{`inner`, errUnbound, ""},
			{`(set! undefined 1)`, errUnbound, ""},
			{`undefined`, errUnbound, ""},
			{`(def x 1)`, "ok", ""},
			{`(def setx (fn [v] (set! x v)))`, "ok", ""},
			{`(setx 5)`, "ok", ""},
			{`x`, "5", ""},
			{`(def y 10)`, "ok", ""},
			{`((fn [y] (set! y 20) y) 1)`, "20", ""},
			{`y`, "10", ""},
		}},
		{"closures share frames", lisptest.TestSequence{
			{`(def make-counter (fn [] (def n 0) (fn [] (set! n (+ n 1)) n)))`, "ok", ""},
			{`(def c (make-counter))`, "ok", ""},
			{`(c)`, "1", ""},
			{`(c)`, "2", ""},
			{`(def d (make-counter))`, "ok", ""},
			{`(d)`, "1", ""},
			{`(c)`, "3", ""},
			{`(def mk (fn [n] (cons (fn [] n) (cons (fn [v] (set! n v)) nil))))`, "ok", ""},
			{`(def pair (mk 1))`, "ok", ""},
			{`((car (cdr pair)) 7)`, "ok", ""},
			{`((car pair))`, "7", ""},
		}},
		{"partial mutation survives errors", lisptest.TestSequence{
			{`(do (def before 1) (car 1) (def after 2))`, errNative, ""},
			{`before`, "1", ""},
			{`after`, errUnbound, ""},
		}},
		{"arity", lisptest.TestSequence{
			{`(def id (fn [a] a))`, "ok", ""},
			{`(id)`, errArity, ""},
			{`(id 1 2)`, errArity, ""},
			{`(id 1)`, "1", ""},
			{`((fn [a] a) 1)`, "1", ""},
			{`((fn [] 3))`, "3", ""},
		}},
		{"defn", lisptest.TestSequence{
			{`(defn add [a b] (+ a b))`, "ok", ""},
			{`(add 1 2)`, "3", ""},
			{`add`, "#<fn add>", ""},
			{`(fn [a b] a)`, "#<fn [a b]>", ""},
			{`(defn greet "Says hello." [name] (println name) name)`, "ok", ""},
			{`(greet "bob")`, `"bob"`, "bob\n"},
			{`(defn nobody [])`, errMalformed, ""},
			{`(defn 1 [] 1)`, errMalformed, ""},
			{`(defn f)`, errMalformed, ""},
		}},
		{"quote", lisptest.TestSequence{
			{`'(1 2)`, "(1 2)", ""},
			{`(quote x)`, "x", ""},
			{`'x`, "x", ""},
			{`''a`, "(quote a)", ""},
			{`'()`, "()", ""},
			{`(quote)`, errMalformed, ""},
			{`(quote a b)`, errMalformed, ""},
		}},
		{"malformed forms", lisptest.TestSequence{
			{`()`, errMalformed, ""},
			{`(do)`, errMalformed, ""},
			{`(begin)`, errMalformed, ""},
			{`(fn [a a] a)`, errMalformed, ""},
			{`(fn [a])`, errMalformed, ""},
			{`(fn (a) a)`, errMalformed, ""},
			{`(fn [1] 1)`, errMalformed, ""},
			{`(fn [ns/a] 1)`, errMalformed, ""},
			{`(def 1 2)`, errMalformed, ""},
			{`(def a)`, errMalformed, ""},
			{`(if)`, errMalformed, ""},
			{`(if 1 2 3 4)`, errMalformed, ""},
			{`(set! x)`, errMalformed, ""},
			{`(set! "x" 1)`, errMalformed, ""},
		}},
		{"special forms shadow bindings", lisptest.TestSequence{
			{`(def if 1)`, "ok", ""},
			{`(if true 2 3)`, "2", ""},
		}},
		{"sequencing", lisptest.TestSequence{
			{`(begin 1 2 3)`, "3", ""},
			{`(do (println 1) (println 2))`, "2", "1\n2\n"},
		}},
		{"application", lisptest.TestSequence{
			{`(1 2)`, errNotProcedure, ""},
			{`("f")`, errNotProcedure, ""},
			{`([] 1)`, errNotProcedure, ""},
			// arguments are evaluated before the procedure type is checked
			{`(1 (println "arg"))`, errNotProcedure, "arg\n"},
			{`(undefined 1)`, errUnbound, ""},
			{`(+ 1 "a")`, errNative, ""},
			{`((fn [f x] (f x)) car [9 8])`, "9", ""},
		}},
		{"namespaced symbols", lisptest.TestSequence{
			{`(def my/x 3)`, "ok", ""},
			{`my/x`, "3", ""},
			{`x`, errUnbound, ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestPrimitives(t *testing.T) {
	tests := lisptest.TestSuite{
		{"car cdr cons", lisptest.TestSequence{
			{`(car '(1 2 3))`, "1", ""},
			{`(car [4 5])`, "4", ""},
			{`(car '())`, "nil", ""},
			{`(car [])`, "nil", ""},
			{`(car nil)`, "nil", ""},
			{`(car 1)`, errNative, ""},
			{`(car)`, errNative, ""},
			{`(cdr '(1 2 3))`, "(2 3)", ""},
			{`(cdr [1 2])`, "(2)", ""},
			{`(cdr [1])`, "()", ""},
			{`(cdr '())`, "()", ""},
			{`(cons 1 '(2))`, "(1 2)", ""},
			{`(cons 1 [2 3])`, "(1 2 3)", ""},
			{`(cons 1 nil)`, "(1)", ""},
			{`(cons 1 '())`, "(1)", ""},
			{`(cons 1 2)`, errNative, ""},
			{`(cons 1)`, errNative, ""},
		}},
		{"predicates", lisptest.TestSequence{
			{`(nil? nil)`, "true", ""},
			{`(nil? false)`, "false", ""},
			{`(nil? '())`, "false", ""},
			{`(true? true)`, "true", ""},
			{`(true? 1)`, "false", ""},
			{`(false? false)`, "true", ""},
			{`(false? nil)`, "false", ""},
			{`(nil?)`, errNative, ""},
			{`(true? 1 2)`, errNative, ""},
		}},
		{"arithmetic", lisptest.TestSequence{
			{`(+)`, "0", ""},
			{`(+ 1 2 3)`, "6", ""},
			{`(+ 0.5 0.25)`, "0.75", ""},
			{`(+ 1 "a")`, errNative, ""},
			{`(- 5)`, "-5", ""},
			{`(- 10 1 2)`, "7", ""},
			{`(- 1 0.5)`, "0.5", ""},
			{`(-)`, errNative, ""},
			{`(- "a")`, errNative, ""},
		}},
		{"equality", lisptest.TestSequence{
			{`(= 1 1)`, "true", ""},
			{`(= 1 2)`, "false", ""},
			{`(= 1 1.0)`, "true", ""},
			{`(= "a" "a")`, "true", ""},
			{`(= "a" 'a)`, "false", ""},
			{`(= :a :a)`, "true", ""},
			{`(= :a 'a)`, "false", ""},
			{`(= [1 [2]] [1 [2]])`, "true", ""},
			{`(= '(1) [1])`, "false", ""},
			{`(= nil false)`, "false", ""},
			{`(= car car)`, "true", ""},
			{`(= (fn [] 1) (fn [] 1))`, "false", ""},
			{`(= 1 1 2)`, "true", ""},
			{`(= 1)`, errNative, ""},
		}},
		{"println", lisptest.TestSequence{
			{`(println "hi")`, `"hi"`, "hi\n"},
			{`(println [1 "a" :k])`, `[1 "a" :k]`, "[1 a :k]\n"},
			{`(println 1.5)`, "1.5", "1.5\n"},
			{`(println 1 2)`, errNative, ""},
			{`(println)`, errNative, ""},
		}},
		{"primitive values", lisptest.TestSequence{
			{`car`, "#<primitive car>", ""},
			{`(def first car)`, "ok", ""},
			{`(first [3])`, "3", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
